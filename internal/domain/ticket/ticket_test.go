package ticket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raksha360/backend/internal/domain"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusResolved, true},
		{StatusOpen, StatusRejected, true},
		{StatusOpen, StatusClosed, true},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusRejected, true},
		{StatusInProgress, StatusClosed, true},
		{StatusInProgress, StatusOpen, false},
		{StatusResolved, StatusOpen, false},
		{StatusResolved, StatusClosed, false},
		{StatusRejected, StatusInProgress, false},
		{StatusClosed, StatusOpen, false},
	}

	for _, tc := range cases {
		tk := &Ticket{Status: tc.from}
		assert.Equal(t, tc.allowed, tk.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTransition_TerminalRejected(t *testing.T) {
	for _, terminal := range []Status{StatusResolved, StatusRejected, StatusClosed} {
		tk := &Ticket{Status: terminal}
		err := tk.Transition(StatusInProgress, domain.Actor{Role: domain.RoleAdmin, ID: uuid.New()})
		assert.ErrorIs(t, err, ErrInvalidStatusTransition, "out of %s", terminal)
		assert.Equal(t, terminal, tk.Status, "status must not change on rejected transition")
	}
}

func TestTransition_InvalidStatus(t *testing.T) {
	tk := &Ticket{Status: StatusOpen}
	err := tk.Transition(Status("paused"), domain.Actor{Role: domain.RoleAdmin, ID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransition_ClosureAttributionByKind(t *testing.T) {
	hospitalID := uuid.New()
	tk := &Ticket{Status: StatusOpen}
	require.NoError(t, tk.Transition(StatusClosed, domain.Actor{Role: domain.RoleHospital, ID: hospitalID}))

	require.NotNil(t, tk.ClosedAt)
	require.NotNil(t, tk.ClosedByHospital)
	assert.Equal(t, hospitalID, *tk.ClosedByHospital)
	assert.Nil(t, tk.ClosedByAdmin)

	adminID := uuid.New()
	tk2 := &Ticket{Status: StatusInProgress}
	require.NoError(t, tk2.Transition(StatusResolved, domain.Actor{Role: domain.RoleAdmin, ID: adminID}))

	require.NotNil(t, tk2.ClosedByAdmin)
	assert.Equal(t, adminID, *tk2.ClosedByAdmin)
	assert.Nil(t, tk2.ClosedByHospital)
}

func TestTransition_RejectSetsNoClosure(t *testing.T) {
	tk := &Ticket{Status: StatusOpen}
	require.NoError(t, tk.Transition(StatusRejected, domain.Actor{Role: domain.RoleAdmin, ID: uuid.New()}))

	assert.Nil(t, tk.ClosedAt)
	assert.Nil(t, tk.ClosedByAdmin)
	assert.Nil(t, tk.ClosedByHospital)
}

func TestAppendNote_PreservesOrder(t *testing.T) {
	tk := &Ticket{}
	a := domain.Actor{Role: domain.RoleHospital, ID: uuid.New()}
	b := domain.Actor{Role: domain.RoleAdmin, ID: uuid.New()}

	tk.AppendNote(a, "first")
	tk.AppendNote(b, "second")
	tk.AppendNote(a, "third")

	require.Len(t, tk.Notes, 3)
	assert.Equal(t, "first", tk.Notes[0].Text)
	assert.Equal(t, "second", tk.Notes[1].Text)
	assert.Equal(t, "third", tk.Notes[2].Text)
	assert.Equal(t, domain.RoleAdmin, tk.Notes[1].AuthorKind)
	assert.Equal(t, b.ID, tk.Notes[1].AuthorID)
}

func TestStampUpdatedBy_BothColumnsAccumulate(t *testing.T) {
	tk := &Ticket{}
	hospitalID := uuid.New()
	adminID := uuid.New()

	tk.StampUpdatedBy(domain.Actor{Role: domain.RoleHospital, ID: hospitalID})
	tk.StampUpdatedBy(domain.Actor{Role: domain.RoleAdmin, ID: adminID})

	require.NotNil(t, tk.LastUpdatedByHospital)
	require.NotNil(t, tk.LastUpdatedByAdmin)
	assert.Equal(t, hospitalID, *tk.LastUpdatedByHospital)
	assert.Equal(t, adminID, *tk.LastUpdatedByAdmin)
}

func TestOwnedBy(t *testing.T) {
	id := uuid.New()
	assert.False(t, (&Ticket{}).OwnedBy(id), "system tickets belong to no hospital")
	assert.True(t, (&Ticket{HospitalID: &id}).OwnedBy(id))
	assert.False(t, (&Ticket{HospitalID: &id}).OwnedBy(uuid.New()))
}
