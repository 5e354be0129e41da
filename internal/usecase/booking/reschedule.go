package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
)

type Reschedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReschedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Reschedule {
	return &Reschedule{
		repo:  repo,
		audit: audit,
	}
}

// Execute troca o horário do agendamento: reserva o novo, reaponta o
// agendamento e libera o antigo, tudo ou nada. Se o novo horário estiver ocupado o
// antigo permanece reservado.
func (uc *Reschedule) Execute(
	ctx context.Context,
	appointmentID uint,
	clientID uint,
	newSlotID uint,
) error {

	if err := uc.repo.Reschedule(ctx, appointmentID, clientID, newSlotID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ClientID: &clientID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
