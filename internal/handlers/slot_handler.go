package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/httpresp"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// SlotHandler é a gestão de agenda: cria e lista os horários do
// livro-razão. Agendar/cancelar passa sempre pelo bot, nunca por aqui.
type SlotHandler struct {
	db *gorm.DB
}

func NewSlotHandler(db *gorm.DB) *SlotHandler {
	return &SlotHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotsRequest struct {
	// Instantes RFC3339 ou "2006-01-02 15:04" no fuso da barbearia.
	Timestamps []string `json:"timestamps" binding:"required,min=1"`
}

// ======================================================
// CREATE
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	var req CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	loc := timezone.Location(timezone.DefaultTimezone)

	var slots []models.Slot
	for _, raw := range req.Timestamps {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.ParseInLocation("2006-01-02 15:04", raw, loc)
		}
		if err != nil {
			httperr.BadRequest(c, "invalid_timestamp", "Horário inválido: "+raw)
			return
		}

		slots = append(slots, models.Slot{
			Timestamp: t,
			Available: true,
		})
	}

	// Instantes já cadastrados não são duplicados.
	var created []models.Slot
	for _, s := range slots {
		var count int64
		if err := h.db.Model(&models.Slot{}).
			Where("timestamp = ?", s.Timestamp).
			Count(&count).Error; err != nil {
			httperr.Internal(c, "failed_to_create_slots", "Erro ao criar horários.")
			return
		}
		if count > 0 {
			continue
		}

		if err := h.db.Create(&s).Error; err != nil {
			httperr.Internal(c, "failed_to_create_slots", "Erro ao criar horários.")
			return
		}
		created = append(created, s)
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": len(created),
		"slots":   created,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Slot{}).Order("timestamp ASC")

	if c.Query("available") == "true" {
		q = q.Where("available = ?", true)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("timestamp >= ?", from)
		}
	}

	var slots []models.Slot
	if err := q.Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Erro ao listar horários.")
		return
	}

	httpresp.List(c, slots)
}
