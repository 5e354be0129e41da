package handlers

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Responder é o motor de conversa visto pelo transporte.
type Responder interface {
	HandleTurn(
		ctx context.Context,
		sessionID string,
		text string,
		displayName string,
	) (string, error)
}

// ======================================================
// HANDLER
// ======================================================

type WebhookHandler struct {
	engine Responder
	log    *zap.Logger
}

func NewWebhookHandler(engine Responder, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{engine: engine, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type webhookRequest struct {
	Body        string `json:"Body"`
	Text        string `json:"text"`
	From        string `json:"From"`
	SessionID   string `json:"sessionId"`
	ProfileName string `json:"ProfileName"`
}

// TwiML de resposta para o gateway de mensagens.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Handle atende o POST /webhook. Aceita form (gateway) ou JSON; form
// recebe TwiML de volta, JSON recebe {"reply": ...}.
func (h *WebhookHandler) Handle(c *gin.Context) {

	var req webhookRequest
	isForm := !strings.Contains(c.ContentType(), "application/json")

	if isForm {
		req.Body = c.PostForm("Body")
		req.Text = c.PostForm("text")
		req.From = c.PostForm("From")
		req.SessionID = c.PostForm("sessionId")
		req.ProfileName = c.PostForm("ProfileName")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Requisição inválida: corpo malformado.")
		return
	}

	msg := req.Body
	if msg == "" {
		msg = req.Text
	}
	from := req.From
	if from == "" {
		from = req.SessionID
	}

	if msg == "" || from == "" {
		c.String(http.StatusBadRequest, "Requisição inválida: Body ou From ausentes.")
		return
	}

	profileName := req.ProfileName
	if profileName == "" {
		profileName = "Cliente"
	}

	reply, err := h.engine.HandleTurn(c.Request.Context(), from, msg, profileName)
	if err != nil {
		h.log.Error("webhook turn failed",
			zap.String("session", from),
			zap.Error(err))
		c.String(http.StatusInternalServerError, "Erro interno do servidor.")
		return
	}

	if isForm {
		c.XML(http.StatusOK, twimlResponse{Message: reply})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
