package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-bot/internal/models"
)

// Repository reúne o livro-razão de horários e o acervo de
// agendamentos. Toda operação de múltiplos passos roda em uma única
// transação no lado da implementação; falhas de domínio chegam como
// httperr.BusinessError, nunca como estado parcialmente commitado.
type Repository interface {
	// -------- Slot ledger --------

	// ListAvailableSlots retorna um snapshot fresco dos horários livres
	// a partir de from, apenas dias úteis (seg-sáb), deduplicados por
	// timestamp e em ordem crescente.
	ListAvailableSlots(
		ctx context.Context,
		from time.Time,
	) ([]models.Slot, error)

	// TryReserve marca o horário como ocupado. Códigos de negócio:
	// slot_unavailable, slot_not_found.
	TryReserve(ctx context.Context, slotID uint) error

	// Release libera o horário; idempotente.
	Release(ctx context.Context, slotID uint) error

	// Swap reserva newSlotID e libera oldSlotID atomicamente. Se a
	// reserva falhar o horário antigo permanece intocado.
	Swap(ctx context.Context, oldSlotID, newSlotID uint) error

	// -------- Appointment store --------

	// Schedule reserva o horário e cria o agendamento com seus serviços
	// na mesma transação.
	Schedule(
		ctx context.Context,
		clientID uint,
		slotID uint,
		serviceIDs []uint,
	) (*models.Appointment, error)

	ListActive(
		ctx context.Context,
		clientID uint,
	) ([]ActiveAppointment, error)

	// Cancel exige que o agendamento pertença ao cliente e esteja
	// ativo; libera o horário na mesma transação.
	Cancel(ctx context.Context, appointmentID, clientID uint) error

	// Reschedule reponteia o agendamento para newSlotID e faz o swap de
	// horários na mesma transação.
	Reschedule(
		ctx context.Context,
		appointmentID uint,
		clientID uint,
		newSlotID uint,
	) error

	// -------- Service catalog --------

	GetServiceByName(ctx context.Context, name string) (*models.Service, error)

	ListServices(ctx context.Context) ([]models.Service, error)
}
