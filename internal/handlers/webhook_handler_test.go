package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeResponder struct {
	reply string
	err   error

	gotSession string
	gotText    string
	gotName    string
}

func (f *fakeResponder) HandleTurn(
	ctx context.Context,
	sessionID string,
	text string,
	displayName string,
) (string, error) {
	f.gotSession = sessionID
	f.gotText = text
	f.gotName = displayName
	return f.reply, f.err
}

func newWebhookRouter(responder *fakeResponder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook", NewWebhookHandler(responder, zap.NewNop()).Handle)
	return r
}

func postForm(router *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookFormReturnsTwiML(t *testing.T) {
	responder := &fakeResponder{reply: "Olá!"}
	router := newWebhookRouter(responder)

	w := postForm(router, url.Values{
		"Body":        {"oi"},
		"From":        {"whatsapp:+5511999999999"},
		"ProfileName": {"João"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<Response>") ||
		!strings.Contains(body, "<Message>Olá!</Message>") {
		t.Fatalf("expected TwiML envelope, got %q", body)
	}

	if responder.gotSession != "whatsapp:+5511999999999" ||
		responder.gotText != "oi" ||
		responder.gotName != "João" {
		t.Fatalf("engine received %q/%q/%q",
			responder.gotSession, responder.gotText, responder.gotName)
	}
}

func TestWebhookJSONReturnsReply(t *testing.T) {
	responder := &fakeResponder{reply: "Olá!"}
	router := newWebhookRouter(responder)

	w := postJSON(router, `{"text":"oi","sessionId":"abc123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["reply"] != "Olá!" {
		t.Fatalf("reply = %q, want %q", resp["reply"], "Olá!")
	}

	if responder.gotSession != "abc123" {
		t.Fatalf("session = %q, want abc123", responder.gotSession)
	}
	// sem ProfileName o nome padrão é usado
	if responder.gotName != "Cliente" {
		t.Fatalf("name = %q, want Cliente", responder.gotName)
	}
}

func TestWebhookRejectsIncompleteRequests(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing message", url.Values{"From": {"x"}}},
		{"missing sender", url.Values{"Body": {"oi"}}},
		{"empty", url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder := &fakeResponder{reply: "nunca"}
			router := newWebhookRouter(responder)

			w := postForm(router, tt.values)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if responder.gotText != "" {
				t.Fatal("engine must not run on invalid request")
			}
		})
	}
}

func TestWebhookRejectsMalformedJSON(t *testing.T) {
	router := newWebhookRouter(&fakeResponder{})

	w := postJSON(router, `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWebhookEngineFailure(t *testing.T) {
	responder := &fakeResponder{err: errors.New("boom")}
	router := newWebhookRouter(responder)

	w := postForm(router, url.Values{
		"Body": {"oi"},
		"From": {"whatsapp:+5511999999999"},
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
