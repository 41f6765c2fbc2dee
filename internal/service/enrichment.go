package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/raksha360/backend/internal/config"
	"github.com/raksha360/backend/internal/domain/prescription"
)

// EnrichmentRequest is the payload sent to the enrichment collaborator.
type EnrichmentRequest struct {
	PatientID   uuid.UUID               `json:"patient_id"`
	PatientName string                  `json:"patient_name"`
	Diagnosis   string                  `json:"diagnosis"`
	Medicines   []prescription.Medicine `json:"medicines"`
}

// EnrichmentResult is the collaborator's structured summary. Output is
// stored verbatim on the prescription row; Model becomes the version tag.
type EnrichmentResult struct {
	Model  string
	Output map[string]any
}

// Enricher is the external enrichment collaborator: untrusted, fallible,
// and always bounded by the caller's context deadline.
type Enricher interface {
	Enrich(ctx context.Context, req *EnrichmentRequest) (*EnrichmentResult, error)
}

// HTTPEnricher calls a remote enrichment service over HTTP.
type HTTPEnricher struct {
	url    string
	client *http.Client
}

func NewHTTPEnricher(cfg config.EnrichmentConfig) *HTTPEnricher {
	return &HTTPEnricher{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (e *HTTPEnricher) Enrich(ctx context.Context, req *EnrichmentRequest) (*EnrichmentResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding enrichment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating enrichment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling enrichment service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading enrichment response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment service returned status %d: %s", resp.StatusCode, respBody)
	}

	var output map[string]any
	if err := json.Unmarshal(respBody, &output); err != nil {
		return nil, fmt.Errorf("parsing enrichment response: %w", err)
	}

	model, _ := output["_meta_model"].(string)
	if model == "" {
		model = "unknown"
	}

	return &EnrichmentResult{Model: model, Output: output}, nil
}

// StubEnricher produces a deterministic local summary. It stands in when
// no enrichment URL is configured.
type StubEnricher struct{}

func (StubEnricher) Enrich(_ context.Context, req *EnrichmentRequest) (*EnrichmentResult, error) {
	meds := make([]string, 0, len(req.Medicines))
	for _, m := range req.Medicines {
		entry := m.Name
		if m.Dosage != "" {
			entry += " " + m.Dosage
		}
		meds = append(meds, entry)
	}

	output := map[string]any{
		"_meta_model": "enrich-stub",
		"patient":     map[string]any{"id": req.PatientID.String(), "name": req.PatientName},
		"diagnosis":   req.Diagnosis,
		"medicines":   meds,
		"human_readable": fmt.Sprintf("Prescription for %s (id:%s); diagnosis: %s; medicines: %s",
			req.PatientName, req.PatientID, req.Diagnosis, strings.Join(meds, ", ")),
	}

	return &EnrichmentResult{Model: "enrich-stub", Output: output}, nil
}
