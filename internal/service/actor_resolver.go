package service

import (
	"context"

	"github.com/raksha360/backend/internal/domain"
	"github.com/raksha360/backend/internal/domain/admin"
	"github.com/raksha360/backend/internal/domain/doctor"
	"github.com/raksha360/backend/internal/domain/hospital"
	"github.com/raksha360/backend/internal/domain/patient"
)

// ActorResolver turns verified token claims into the concrete actor row.
// Centralizing the lookup keeps role dispatch out of the handlers: every
// protected operation sees the same Actor shape, whatever the kind.
type ActorResolver struct {
	patients  patient.Repository
	doctors   doctor.Repository
	hospitals hospital.Repository
	admins    admin.Repository
}

func NewActorResolver(
	patients patient.Repository,
	doctors doctor.Repository,
	hospitals hospital.Repository,
	admins admin.Repository,
) *ActorResolver {
	return &ActorResolver{patients: patients, doctors: doctors, hospitals: hospitals, admins: admins}
}

// Resolve loads the actor row by the identity claim within the collection
// implied by the role claim. A row deleted after token issuance yields
// ErrActorNotFound.
func (r *ActorResolver) Resolve(ctx context.Context, claims *domain.TokenClaims) (domain.Actor, error) {
	switch claims.Role {
	case domain.RolePatient:
		p, err := r.patients.GetByEmail(ctx, claims.Email)
		if err != nil {
			return domain.Actor{}, ErrActorNotFound
		}
		return domain.Actor{Role: domain.RolePatient, ID: p.ID, Email: p.Email}, nil

	case domain.RoleDoctor:
		d, err := r.doctors.GetByEmail(ctx, claims.Email)
		if err != nil {
			return domain.Actor{}, ErrActorNotFound
		}
		return domain.Actor{Role: domain.RoleDoctor, ID: d.ID, Email: d.Email}, nil

	case domain.RoleHospital:
		h, err := r.hospitals.GetByEmail(ctx, claims.Email)
		if err != nil {
			return domain.Actor{}, ErrActorNotFound
		}
		return domain.Actor{Role: domain.RoleHospital, ID: h.ID, Email: h.Email}, nil

	case domain.RoleAdmin:
		a, err := r.admins.GetByEmail(ctx, claims.Email)
		if err != nil {
			return domain.Actor{}, ErrActorNotFound
		}
		if !a.IsActive {
			return domain.Actor{}, ErrActorNotFound
		}
		return domain.Actor{Role: domain.RoleAdmin, ID: a.ID, Email: a.Email}, nil
	}

	return domain.Actor{}, ErrActorNotFound
}
