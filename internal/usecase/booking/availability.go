package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute devolve os horários livres agrupados por dia, já no fuso da
// barbearia e em ordem crescente. Cada chamada consulta o banco de
// novo: a lista é sempre um snapshot fresco.
func (uc *GetAvailability) Execute(
	ctx context.Context,
) ([]domain.DayGroup, error) {

	slots, err := uc.repo.ListAvailableSlots(ctx, timezone.Now())
	if err != nil {
		return nil, err
	}

	var days []domain.DayGroup
	for _, s := range slots {
		t := s.Timestamp.In(timezone.Location(timezone.DefaultTimezone))
		day := startOfDay(t)

		opt := domain.SlotOption{ID: s.ID, Time: t}

		if n := len(days); n > 0 && days[n-1].Date.Equal(day) {
			days[n-1].Slots = append(days[n-1].Slots, opt)
			continue
		}

		days = append(days, domain.DayGroup{
			Date:  day,
			Slots: []domain.SlotOption{opt},
		})
	}

	return days, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
