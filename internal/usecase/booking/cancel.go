package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
)

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancel(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Cancel {
	return &Cancel{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancela o agendamento do cliente e libera o horário na mesma
// transação. Posse é obrigatória: agendamento de outro cliente conta
// como appointment_not_found.
func (uc *Cancel) Execute(
	ctx context.Context,
	appointmentID uint,
	clientID uint,
) error {

	if err := uc.repo.Cancel(ctx, appointmentID, clientID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ClientID: &clientID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
