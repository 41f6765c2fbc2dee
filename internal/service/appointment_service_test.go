package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/domain/appointment"
	"github.com/raksha360/backend/internal/domain/doctor"
)

func newTestAppointmentService() (*AppointmentService, *fakeAppointmentRepo, *fakeDoctorRepo) {
	appointments := newFakeAppointmentRepo()
	doctors := newFakeDoctorRepo()
	auditSvc := NewAuditService(&fakeAuditRepo{}, zap.NewNop())
	svc := NewAppointmentService(appointments, doctors, auditSvc, zap.NewNop())
	return svc, appointments, doctors
}

func TestAppointmentBook(t *testing.T) {
	svc, _, doctors := newTestAppointmentService()
	doc := &doctor.Doctor{Email: "doc@example.com"}
	doctors.add(doc)
	patientID := uuid.New()

	a, err := svc.Book(context.Background(), patientActor(patientID), &appointment.BookAppointmentCommand{
		// A patient id in the command must not override the actor.
		PatientID: uuid.New(),
		DoctorID:  doc.ID,
		Date:      time.Now().Add(48 * time.Hour),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, patientID, a.PatientID)
	assert.Equal(t, appointment.StatusBooked, a.Status)
}

func TestAppointmentBook_UnknownDoctor(t *testing.T) {
	svc, _, _ := newTestAppointmentService()

	_, err := svc.Book(context.Background(), patientActor(uuid.New()), &appointment.BookAppointmentCommand{
		DoctorID: uuid.New(),
		Date:     time.Now(),
	}, "")
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)
}

func TestAppointmentBook_PatientOnly(t *testing.T) {
	svc, _, doctors := newTestAppointmentService()
	doc := &doctor.Doctor{Email: "doc@example.com"}
	doctors.add(doc)

	_, err := svc.Book(context.Background(), doctorActor(uuid.New()), &appointment.BookAppointmentCommand{
		DoctorID: doc.ID,
		Date:     time.Now(),
	}, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAppointmentList_OwnOnly(t *testing.T) {
	svc, repo, _ := newTestAppointmentService()
	mine := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &appointment.Appointment{PatientID: mine, DoctorID: uuid.New()}))
	require.NoError(t, repo.Create(context.Background(), &appointment.Appointment{PatientID: uuid.New(), DoctorID: uuid.New()}))

	got, err := svc.List(context.Background(), patientActor(mine))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine, got[0].PatientID)
}

func TestAppointmentCancel(t *testing.T) {
	svc, repo, _ := newTestAppointmentService()
	patientID := uuid.New()
	a := &appointment.Appointment{PatientID: patientID, DoctorID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), a))

	err := svc.Cancel(context.Background(), patientActor(patientID), a.ID, "")
	require.NoError(t, err)

	remaining, err := repo.ListByPatient(context.Background(), patientID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

// Cancelling someone else's appointment must look like a missing one,
// not a permission error.
func TestAppointmentCancel_ForeignReadsAsNotFound(t *testing.T) {
	svc, repo, _ := newTestAppointmentService()
	owner := uuid.New()
	a := &appointment.Appointment{PatientID: owner, DoctorID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), a))

	err := svc.Cancel(context.Background(), patientActor(uuid.New()), a.ID, "")
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)
}
