package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// slotListerStub cobre só a consulta de disponibilidade; o resto do
// contrato não é alcançado por este caso de uso.
type slotListerStub struct {
	domain.Repository

	slots []models.Slot
	err   error
}

func (s *slotListerStub) ListAvailableSlots(
	ctx context.Context,
	from time.Time,
) ([]models.Slot, error) {
	return s.slots, s.err
}

func TestGetAvailabilityGroupsByDay(t *testing.T) {
	loc := timezone.Location(timezone.DefaultTimezone)

	day1 := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	day2 := time.Date(2026, 9, 8, 0, 0, 0, 0, loc)

	stub := &slotListerStub{slots: []models.Slot{
		{ID: 1, Timestamp: day1.Add(10 * time.Hour)},
		{ID: 2, Timestamp: day1.Add(11 * time.Hour)},
		{ID: 3, Timestamp: day2.Add(9 * time.Hour)},
	}}

	days, err := NewGetAvailability(stub).Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(days) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(days))
	}

	if !days[0].Date.Equal(day1) || !days[1].Date.Equal(day2) {
		t.Fatalf("unexpected group dates: %v, %v", days[0].Date, days[1].Date)
	}

	if len(days[0].Slots) != 2 || len(days[1].Slots) != 1 {
		t.Fatalf("unexpected group sizes: %d, %d",
			len(days[0].Slots), len(days[1].Slots))
	}

	if days[0].Slots[0].ID != 1 || days[0].Slots[1].ID != 2 {
		t.Fatalf("slots out of order in first group: %+v", days[0].Slots)
	}
}

func TestGetAvailabilityConvertsTimezone(t *testing.T) {
	loc := timezone.Location(timezone.DefaultTimezone)

	// 01:00 UTC cai no dia anterior em São Paulo
	utc := time.Date(2026, 9, 8, 1, 0, 0, 0, time.UTC)

	stub := &slotListerStub{slots: []models.Slot{
		{ID: 1, Timestamp: utc},
	}}

	days, err := NewGetAvailability(stub).Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	if len(days) != 1 || !days[0].Date.Equal(want) {
		t.Fatalf("expected group on %v, got %+v", want, days)
	}
}

func TestGetAvailabilityEmpty(t *testing.T) {
	days, err := NewGetAvailability(&slotListerStub{}).Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no groups, got %+v", days)
	}
}

func TestGetAvailabilityPropagatesError(t *testing.T) {
	stub := &slotListerStub{err: errors.New("db down")}

	if _, err := NewGetAvailability(stub).Execute(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
