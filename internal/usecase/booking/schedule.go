package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ScheduleInput struct {
	ClientID   uint
	SlotID     uint
	ServiceIDs []uint
}

// ======================================================
// USE CASE
// ======================================================

type Schedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Schedule {
	return &Schedule{
		repo:  repo,
		audit: audit,
	}
}

// Execute reserva o horário e cria o agendamento em uma transação só.
// Conflito de horário volta como slot_unavailable; nesse caso o
// livro-razão fica exatamente como estava.
func (uc *Schedule) Execute(
	ctx context.Context,
	in ScheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.Schedule(ctx, in.ClientID, in.SlotID, in.ServiceIDs)
	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(audit.Event{
				ClientID: &in.ClientID,
				Action:   "slot_conflict",
				Entity:   "slot",
				EntityID: &in.SlotID,
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClientID: &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
