// Package pdfgen renders prescription documents for download.
package pdfgen

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/raksha360/backend/internal/domain/prescription"
)

// Prescription renders a one-page PDF for the given prescription and
// returns its bytes.
func Prescription(p *prescription.Prescription) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Prescription #%s", p.ID), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Patient ID: "+p.PatientID.String(), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Doctor ID: "+p.DoctorID.String(), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Created: "+p.CreatedAt.Format(time.RFC3339), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Diagnosis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	diagnosis := p.Diagnosis
	if diagnosis == "" {
		diagnosis = "-"
	}
	pdf.MultiCell(0, 5, diagnosis, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Medicines", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(p.RawMedicines) == 0 {
		pdf.CellFormat(0, 5, "No medicines listed.", "", 1, "L", false, 0, "")
	}
	for _, m := range p.RawMedicines {
		pdf.MultiCell(0, 5, medicineLine(m), "", "L", false)
	}

	if p.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, p.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering prescription pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func medicineLine(m prescription.Medicine) string {
	parts := []string{m.Name}
	for _, s := range []string{m.Dosage, m.Frequency, m.Duration} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " - ")
}
