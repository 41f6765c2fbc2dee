package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/admin"
	"github.com/raksha360/backend/internal/domain/appointment"
	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/patient"
	"github.com/raksha360/backend/internal/domain/prescription"
	"github.com/raksha360/backend/internal/domain/ticket"
)

// Hand-written repository fakes backed by maps. Tests set up state
// directly instead of scripting expectations.

type fakePatientRepo struct {
	byEmail map[string]*patient.Patient
	byID    map[uuid.UUID]*patient.Patient
	created []*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		byEmail: map[string]*patient.Patient{},
		byID:    map[uuid.UUID]*patient.Patient{},
	}
}

func (f *fakePatientRepo) add(p *patient.Patient) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.byEmail[p.Email] = p
	f.byID[p.ID] = p
}

func (f *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	if _, ok := f.byEmail[p.Email]; ok {
		return patient.ErrPatientAlreadyExists
	}
	f.add(p)
	f.created = append(f.created, p)
	return nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, patient.ErrPatientNotFound
}

func (f *fakePatientRepo) GetByEmail(_ context.Context, email string) (*patient.Patient, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, patient.ErrPatientNotFound
}

type fakeDoctorRepo struct {
	byEmail map[string]*doctor.Doctor
	byID    map[uuid.UUID]*doctor.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		byEmail: map[string]*doctor.Doctor{},
		byID:    map[uuid.UUID]*doctor.Doctor{},
	}
}

func (f *fakeDoctorRepo) add(d *doctor.Doctor) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.byEmail[d.Email] = d
	f.byID[d.ID] = d
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	if _, ok := f.byEmail[d.Email]; ok {
		return doctor.ErrDoctorAlreadyExists
	}
	f.add(d)
	return nil
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if d, ok := f.byID[id]; ok {
		return d, nil
	}
	return nil, doctor.ErrDoctorNotFound
}

func (f *fakeDoctorRepo) GetByEmail(_ context.Context, email string) (*doctor.Doctor, error) {
	if d, ok := f.byEmail[email]; ok {
		return d, nil
	}
	return nil, doctor.ErrDoctorNotFound
}

func (f *fakeDoctorRepo) Search(_ context.Context, _ *doctor.SearchQuery) ([]*doctor.Doctor, error) {
	out := make([]*doctor.Doctor, 0, len(f.byID))
	for _, d := range f.byID {
		out = append(out, d)
	}
	return out, nil
}

type fakeHospitalRepo struct {
	byEmail map[string]*hospital.Hospital
	byID    map[uuid.UUID]*hospital.Hospital
}

func newFakeHospitalRepo() *fakeHospitalRepo {
	return &fakeHospitalRepo{
		byEmail: map[string]*hospital.Hospital{},
		byID:    map[uuid.UUID]*hospital.Hospital{},
	}
}

func (f *fakeHospitalRepo) add(h *hospital.Hospital) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	f.byEmail[h.Email] = h
	f.byID[h.ID] = h
}

func (f *fakeHospitalRepo) Create(_ context.Context, h *hospital.Hospital) error {
	if _, ok := f.byEmail[h.Email]; ok {
		return hospital.ErrHospitalAlreadyExists
	}
	f.add(h)
	return nil
}

func (f *fakeHospitalRepo) GetByID(_ context.Context, id uuid.UUID) (*hospital.Hospital, error) {
	if h, ok := f.byID[id]; ok {
		return h, nil
	}
	return nil, hospital.ErrHospitalNotFound
}

func (f *fakeHospitalRepo) GetByEmail(_ context.Context, email string) (*hospital.Hospital, error) {
	if h, ok := f.byEmail[email]; ok {
		return h, nil
	}
	return nil, hospital.ErrHospitalNotFound
}

func (f *fakeHospitalRepo) UpdateStatus(_ context.Context, id uuid.UUID, status hospital.Status) error {
	h, ok := f.byID[id]
	if !ok {
		return hospital.ErrHospitalNotFound
	}
	h.Status = status
	return nil
}

type fakeAdminRepo struct {
	byEmail map[string]*admin.AdminUser
	byID    map[uuid.UUID]*admin.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		byEmail: map[string]*admin.AdminUser{},
		byID:    map[uuid.UUID]*admin.AdminUser{},
	}
}

func (f *fakeAdminRepo) add(a *admin.AdminUser) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.byEmail[a.Email] = a
	f.byID[a.ID] = a
}

func (f *fakeAdminRepo) Create(_ context.Context, a *admin.AdminUser) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return admin.ErrAdminAlreadyExists
	}
	f.add(a)
	return nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id uuid.UUID) (*admin.AdminUser, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, admin.ErrAdminNotFound
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*admin.AdminUser, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, admin.ErrAdminNotFound
}

type fakeAppointmentRepo struct {
	byID map[uuid.UUID]*appointment.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: map[uuid.UUID]*appointment.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAppointmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range f.byID {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) DeleteOwned(_ context.Context, id, patientID uuid.UUID) error {
	a, ok := f.byID[id]
	if !ok || a.PatientID != patientID {
		return appointment.ErrAppointmentNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePrescriptionRepo struct {
	byID              map[uuid.UUID]*prescription.Prescription
	enrichmentUpdates int
	updateErr         error
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{byID: map[uuid.UUID]*prescription.Prescription{}}
}

func (f *fakePrescriptionRepo) Create(_ context.Context, p *prescription.Prescription) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePrescriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*prescription.Prescription, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, prescription.ErrPrescriptionNotFound
}

func (f *fakePrescriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*prescription.Prescription, error) {
	var out []*prescription.Prescription
	for _, p := range f.byID {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrescriptionRepo) UpdateEnrichment(_ context.Context, p *prescription.Prescription) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.enrichmentUpdates++
	stored, ok := f.byID[p.ID]
	if !ok {
		return prescription.ErrPrescriptionNotFound
	}
	stored.LLMOutput = p.LLMOutput
	stored.LLMVersion = p.LLMVersion
	stored.LLMStatus = p.LLMStatus
	return nil
}

type fakeTicketRepo struct {
	byID map[uuid.UUID]*ticket.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{byID: map[uuid.UUID]*ticket.Ticket{}}
}

func (f *fakeTicketRepo) add(t *ticket.Ticket) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.byID[t.ID] = t
}

func (f *fakeTicketRepo) Create(_ context.Context, t *ticket.Ticket) error {
	f.add(t)
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id uuid.UUID) (*ticket.Ticket, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, ticket.ErrTicketNotFound
}

func (f *fakeTicketRepo) List(_ context.Context, q *ticket.ListTicketsQuery) ([]*ticket.Ticket, error) {
	var out []*ticket.Ticket
	for _, t := range f.byID {
		if q.Status != nil && t.Status != *q.Status {
			continue
		}
		if q.HospitalID != nil && (t.HospitalID == nil || *t.HospitalID != *q.HospitalID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTicketRepo) Save(_ context.Context, t *ticket.Ticket) error {
	if _, ok := f.byID[t.ID]; !ok {
		return ticket.ErrTicketNotFound
	}
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTicketRepo) CountByHospital(_ context.Context, hospitalID uuid.UUID) (map[ticket.Status]int64, error) {
	counts := map[ticket.Status]int64{}
	for _, t := range f.byID {
		if t.HospitalID != nil && *t.HospitalID == hospitalID {
			counts[t.Status]++
		}
	}
	return counts, nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

// fakeIssuer avoids real signing in service tests.
type fakeIssuer struct {
	lastClaims *domain.TokenClaims
}

func (f *fakeIssuer) Issue(claims *domain.TokenClaims) (string, time.Time, error) {
	f.lastClaims = claims
	return "test-token", time.Now().Add(time.Hour), nil
}
