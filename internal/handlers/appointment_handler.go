package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-bot/internal/dto"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/httpresp"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// Visão administrativa dos agendamentos do dia. Leitura apenas: toda
// mutação passa pelo fluxo do bot.
type AppointmentHandler struct {
	db *gorm.DB
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{db: db}
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	loc := timezone.Location(timezone.DefaultTimezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	start := date
	end := start.Add(24 * time.Hour)

	var aps []models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Slot").
		Preload("Services").
		Joins("JOIN slots ON slots.id = appointments.slot_id").
		Where("slots.timestamp >= ? AND slots.timestamp < ?", start, end).
		Order("slots.timestamp ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		names := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			names = append(names, s.Name)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:         ap.ID,
			SlotTime:   ap.Slot.Timestamp,
			Status:     ap.Status,
			ClientName: ap.Client.Name,
			Services:   names,
		})
	}

	httpresp.List(c, out)
}
