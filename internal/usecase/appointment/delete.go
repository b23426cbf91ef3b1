package appointment

import (
	"context"

	"github.com/trimlyapp/trimly-api/internal/audit"
	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove (soft delete) um agendamento do profissional.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	companyID uint,
	userID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, userID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.SoftDeleteAppointment(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return nil
}

// ExecuteByRef é o fluxo do portal: o cliente só pode remover o próprio
// agendamento enquanto ainda está PENDING.
func (uc *DeleteAppointment) ExecuteByRef(
	ctx context.Context,
	companyID uint,
	ref string,
) error {

	ap, err := uc.repo.GetAppointmentByRef(ctx, companyID, ref)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if schedule.Status(ap.Status) != schedule.StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}

	if err := uc.repo.SoftDeleteAppointment(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		Action:    "appointment_deleted_by_client",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return nil
}
