package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// Os testes deste pacote rodam contra um Postgres real apontado por
// DATABASE_URL; sem a variável, são pulados.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Client{},
		&models.Service{},
		&models.Slot{},
		&models.Appointment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db.Exec("TRUNCATE appointment_services, appointments, slots, services, clients RESTART IDENTITY CASCADE")

	return db
}

func seedClient(t *testing.T, db *gorm.DB) models.Client {
	t.Helper()
	c := models.Client{Name: "João", Address: "whatsapp:+5511999999999"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func seedService(t *testing.T, db *gorm.DB, name string) models.Service {
	t.Helper()
	s := models.Service{Name: name}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return s
}

func seedSlot(t *testing.T, db *gorm.DB, ts time.Time) models.Slot {
	t.Helper()
	s := models.Slot{Timestamp: ts, Available: true}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return s
}

func slotAvailable(t *testing.T, db *gorm.DB, id uint) bool {
	t.Helper()
	var s models.Slot
	if err := db.First(&s, id).Error; err != nil {
		t.Fatalf("load slot %d: %v", id, err)
	}
	return s.Available
}

func TestTryReserveSingleWinner(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	slot := seedSlot(t, db, time.Now().Add(24*time.Hour))

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.TryReserve(ctx, slot.ID)
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "slot_unavailable"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 || conflicts != workers-1 {
		t.Fatalf("expected 1 winner and %d conflicts, got %d and %d",
			workers-1, wins, conflicts)
	}

	if slotAvailable(t, db, slot.ID) {
		t.Fatal("slot should be unavailable after reservation")
	}
}

func TestTryReserveUnknownSlot(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)

	err := repo.TryReserve(context.Background(), 9999)
	if !httperr.IsBusiness(err, "slot_not_found") {
		t.Fatalf("expected slot_not_found, got %v", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	slot := seedSlot(t, db, time.Now().Add(24*time.Hour))

	if err := repo.TryReserve(ctx, slot.ID); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.Release(ctx, slot.ID); err != nil {
			t.Fatalf("release #%d: %v", i+1, err)
		}
	}

	if !slotAvailable(t, db, slot.ID) {
		t.Fatal("slot should be available after release")
	}
}

func TestScheduleRollsBackOnBadService(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db)
	slot := seedSlot(t, db, time.Now().Add(24*time.Hour))

	_, err := repo.Schedule(ctx, client.ID, slot.ID, []uint{9999})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}

	// a transação inteira foi desfeita: slot livre, nada agendado
	if !slotAvailable(t, db, slot.ID) {
		t.Fatal("slot must stay available when schedule fails")
	}
	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no appointments, found %d", count)
	}
}

func TestScheduleAndListActive(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db)
	corte := seedService(t, db, "Corte")
	barba := seedService(t, db, "Barba")
	slot := seedSlot(t, db, time.Now().Add(24*time.Hour))

	ap, err := repo.Schedule(ctx, client.ID, slot.ID, []uint{corte.ID, barba.ID})
	if err != nil {
		t.Fatal(err)
	}

	if slotAvailable(t, db, slot.ID) {
		t.Fatal("slot must be reserved by schedule")
	}

	active, err := repo.ListActive(ctx, client.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active appointment, got %d", len(active))
	}
	if active[0].ID != ap.ID || len(active[0].Services) != 2 {
		t.Fatalf("unexpected active appointment: %+v", active[0])
	}

	// o mesmo slot não agenda duas vezes
	_, err = repo.Schedule(ctx, client.ID, slot.ID, []uint{corte.ID})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db)
	corte := seedService(t, db, "Corte")
	slot := seedSlot(t, db, time.Now().Add(24*time.Hour))

	ap, err := repo.Schedule(ctx, client.ID, slot.ID, []uint{corte.ID})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("wrong client is rejected", func(t *testing.T) {
		err := repo.Cancel(ctx, ap.ID, client.ID+1)
		if !httperr.IsBusiness(err, "appointment_not_found") {
			t.Fatalf("expected appointment_not_found, got %v", err)
		}
	})

	t.Run("owner cancels and slot is released", func(t *testing.T) {
		if err := repo.Cancel(ctx, ap.ID, client.ID); err != nil {
			t.Fatal(err)
		}

		if !slotAvailable(t, db, slot.ID) {
			t.Fatal("slot must be released on cancel")
		}

		var stored models.Appointment
		if err := db.First(&stored, ap.ID).Error; err != nil {
			t.Fatal(err)
		}
		if stored.Status != string(domain.StatusCancelled) || stored.CancelledAt == nil {
			t.Fatalf("expected cancelled status with timestamp, got %+v", stored)
		}
	})

	t.Run("second cancel is rejected", func(t *testing.T) {
		err := repo.Cancel(ctx, ap.ID, client.ID)
		if !httperr.IsBusiness(err, "appointment_not_found") {
			t.Fatalf("expected appointment_not_found, got %v", err)
		}
	})
}

func TestRescheduleSwapsSlots(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db)
	corte := seedService(t, db, "Corte")
	oldSlot := seedSlot(t, db, time.Now().Add(24*time.Hour))
	newSlot := seedSlot(t, db, time.Now().Add(48*time.Hour))

	ap, err := repo.Schedule(ctx, client.ID, oldSlot.ID, []uint{corte.ID})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Reschedule(ctx, ap.ID, client.ID, newSlot.ID); err != nil {
		t.Fatal(err)
	}

	if !slotAvailable(t, db, oldSlot.ID) {
		t.Fatal("old slot must be released")
	}
	if slotAvailable(t, db, newSlot.ID) {
		t.Fatal("new slot must be reserved")
	}

	var stored models.Appointment
	if err := db.First(&stored, ap.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.SlotID != newSlot.ID {
		t.Fatalf("expected slot %d, got %d", newSlot.ID, stored.SlotID)
	}

	// ninguém mais consegue reservar o horário do agendamento movido
	if err := repo.TryReserve(ctx, newSlot.ID); !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("new slot must not be reservable after reschedule, got %v", err)
	}
}

func TestRescheduleToTakenSlotKeepsOriginal(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	client := seedClient(t, db)
	corte := seedService(t, db, "Corte")
	oldSlot := seedSlot(t, db, time.Now().Add(24*time.Hour))
	takenSlot := seedSlot(t, db, time.Now().Add(48*time.Hour))

	ap, err := repo.Schedule(ctx, client.ID, oldSlot.ID, []uint{corte.ID})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.TryReserve(ctx, takenSlot.ID); err != nil {
		t.Fatal(err)
	}

	err = repo.Reschedule(ctx, ap.ID, client.ID, takenSlot.ID)
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}

	// agendamento original intacto
	var stored models.Appointment
	if err := db.First(&stored, ap.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.SlotID != oldSlot.ID {
		t.Fatalf("appointment moved to %d, expected %d", stored.SlotID, oldSlot.ID)
	}
	if slotAvailable(t, db, oldSlot.ID) {
		t.Fatal("old slot must remain reserved when reschedule fails")
	}
}

func TestListAvailableSlotsSkipsSundaysAndDuplicates(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	loc := timezone.Location(timezone.DefaultTimezone)

	base := time.Now().In(loc).Add(24 * time.Hour)
	for base.Weekday() != time.Monday {
		base = base.Add(24 * time.Hour)
	}
	monday := time.Date(base.Year(), base.Month(), base.Day(), 12, 0, 0, 0, loc)

	// o dia da semana conta no fuso da barbearia: sábado 22h BRT já é
	// domingo em UTC e mesmo assim aparece; domingo 22h BRT é segunda
	// em UTC e mesmo assim some
	saturdayNight := monday.AddDate(0, 0, 5).Add(10 * time.Hour)
	sundayNight := monday.AddDate(0, 0, 6).Add(10 * time.Hour)

	seedSlot(t, db, monday)
	seedSlot(t, db, monday) // duplicado no mesmo instante
	seedSlot(t, db, saturdayNight)
	seedSlot(t, db, sundayNight)

	slots, err := repo.ListAvailableSlots(ctx, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots (deduped, Saturday night in, Sunday out), got %d", len(slots))
	}
	for _, s := range slots {
		if s.Timestamp.In(loc).Weekday() == time.Sunday {
			t.Fatalf("Sunday slot leaked: %v", s.Timestamp)
		}
	}
}
