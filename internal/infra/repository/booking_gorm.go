package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Slot ledger
// --------------------------------------------------

func (r *BookingGormRepository) ListAvailableSlots(
	ctx context.Context,
	from time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	// O dia da semana é o do fuso da barbearia, não o da sessão do
	// banco: sábado à noite BRT ainda é sábado.
	if err := r.db.WithContext(ctx).
		Where("available = ? AND timestamp >= ?", true, from).
		Where("EXTRACT(DOW FROM timestamp AT TIME ZONE ?) BETWEEN 1 AND 6",
			timezone.DefaultTimezone).
		Order("timestamp ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	// Horários duplicados no mesmo instante contam uma vez só.
	seen := make(map[int64]bool, len(slots))
	unique := slots[:0]
	for _, s := range slots {
		key := s.Timestamp.Unix()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, s)
	}

	return unique, nil
}

// reserve alterna available para false em um único UPDATE condicional.
// Zero linhas afetadas distingue ocupado de inexistente.
func (r *BookingGormRepository) reserve(tx *gorm.DB, slotID uint) error {
	res := tx.Model(&models.Slot{}).
		Where("id = ? AND available = ?", slotID, true).
		Update("available", false)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Slot{}).
			Where("id = ?", slotID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return httperr.ErrBusiness("slot_not_found")
		}
		return httperr.ErrBusiness("slot_unavailable")
	}

	return nil
}

// release é idempotente: liberar um horário já livre não é erro.
func (r *BookingGormRepository) release(tx *gorm.DB, slotID uint) error {
	return tx.Model(&models.Slot{}).
		Where("id = ?", slotID).
		Update("available", true).Error
}

func (r *BookingGormRepository) TryReserve(
	ctx context.Context,
	slotID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.reserve(tx, slotID)
	})
}

func (r *BookingGormRepository) Release(
	ctx context.Context,
	slotID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.release(tx, slotID)
	})
}

func (r *BookingGormRepository) Swap(
	ctx context.Context,
	oldSlotID uint,
	newSlotID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.reserve(tx, newSlotID); err != nil {
			return err
		}
		return r.release(tx, oldSlotID)
	})
}

// --------------------------------------------------
// Appointment store
// --------------------------------------------------

func (r *BookingGormRepository) Schedule(
	ctx context.Context,
	clientID uint,
	slotID uint,
	serviceIDs []uint,
) (*models.Appointment, error) {

	if clientID == 0 || slotID == 0 {
		return nil, httperr.ErrBusiness("invalid_client_or_slot")
	}
	if len(serviceIDs) == 0 {
		return nil, httperr.ErrBusiness("no_services")
	}

	var created models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var services []models.Service
		if err := tx.Find(&services, serviceIDs).Error; err != nil {
			return err
		}
		if len(services) != len(serviceIDs) {
			return httperr.ErrBusiness("service_not_found")
		}

		if err := r.reserve(tx, slotID); err != nil {
			return err
		}

		ap := models.Appointment{
			ClientID: clientID,
			SlotID:   slotID,
			Services: services,
			Status:   string(domain.StatusActive),
		}

		// Omit evita upsert do catálogo; só as linhas de junção nascem aqui.
		if err := tx.Omit("Services.*").Create(&ap).Error; err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *BookingGormRepository) ListActive(
	ctx context.Context,
	clientID uint,
) ([]domain.ActiveAppointment, error) {

	var rows []struct {
		ID          uint
		SlotID      uint
		SlotTime    time.Time
		ServiceName string
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select(
			"appointments.id AS id",
			"appointments.slot_id AS slot_id",
			"slots.timestamp AS slot_time",
			"services.name AS service_name",
		).
		Joins("JOIN slots ON slots.id = appointments.slot_id").
		Joins("JOIN appointment_services ON appointment_services.appointment_id = appointments.id").
		Joins("JOIN services ON services.id = appointment_services.service_id").
		Where("appointments.client_id = ? AND appointments.status = ?",
			clientID, string(domain.StatusActive)).
		Order("slots.timestamp ASC, services.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	var out []domain.ActiveAppointment
	for _, row := range rows {
		if n := len(out); n > 0 && out[n-1].ID == row.ID {
			out[n-1].Services = append(out[n-1].Services, row.ServiceName)
			continue
		}
		out = append(out, domain.ActiveAppointment{
			ID:       row.ID,
			SlotID:   row.SlotID,
			SlotTime: row.SlotTime,
			Services: []string{row.ServiceName},
		})
	}

	return out, nil
}

// lockActive carrega o agendamento com lock de linha, exigindo posse e
// status ativo.
func (r *BookingGormRepository) lockActive(
	tx *gorm.DB,
	appointmentID uint,
	clientID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND client_id = ? AND status = ?",
			appointmentID, clientID, string(domain.StatusActive)).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) Cancel(
	ctx context.Context,
	appointmentID uint,
	clientID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		ap, err := r.lockActive(tx, appointmentID, clientID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(ap).Updates(map[string]any{
			"status":       string(domain.StatusCancelled),
			"cancelled_at": &now,
		}).Error; err != nil {
			return err
		}

		return r.release(tx, ap.SlotID)
	})
}

func (r *BookingGormRepository) Reschedule(
	ctx context.Context,
	appointmentID uint,
	clientID uint,
	newSlotID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		ap, err := r.lockActive(tx, appointmentID, clientID)
		if err != nil {
			return err
		}

		// Update escreve o novo valor de volta na struct; o horário
		// antigo precisa ser capturado antes.
		oldSlotID := ap.SlotID

		if err := r.reserve(tx, newSlotID); err != nil {
			return err
		}

		if err := tx.Model(ap).
			Update("slot_id", newSlotID).Error; err != nil {
			return err
		}

		return r.release(tx, oldSlotID)
	})
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {

	var svc models.Service
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&svc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}

	return &svc, nil
}

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
