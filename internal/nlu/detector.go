package nlu

import (
	"context"
	"strings"
)

// ===============================
// Intents
// ===============================

const (
	IntentWelcome    = "welcome_intent"
	IntentService    = "escolha_servico"
	IntentCancel     = "cancelar_agendamento"
	IntentReschedule = "reagendar_agendamento"
	IntentDefault    = "default"
)

type Intent struct {
	Name       string
	Parameters map[string]string
}

// Detector é o colaborador de NLU. A implementação padrão é por
// palavras-chave; um Dialogflow entra aqui sem tocar no workflow.
type Detector interface {
	Detect(ctx context.Context, sessionID, text string) (Intent, error)
}

// ===============================
// Keyword detector
// ===============================

// Mapeia variações digitadas para o nome do serviço no catálogo.
var serviceAliases = map[string]string{
	"corte":        "Corte",
	"cortarcabelo": "Corte",
	"cabelo":       "Corte",
	"barba":        "Barba",
	"fazerbarba":   "Barba",
	"sobrancelha":  "Sobrancelha",
	"cortebarba":   "Corte + Barba",
	"corteebarba":  "Corte + Barba",
}

var greetings = []string{
	"oi", "ola", "olá", "bom dia", "boa tarde", "boa noite", "menu",
}

type KeywordDetector struct{}

func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{}
}

// Normalize reduz o texto ao formato das chaves de alias: minúsculas,
// sem espaços e com +/& virando "e".
func Normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, "+", "e")
	t = strings.ReplaceAll(t, "&", "e")
	return t
}

// ResolveService traduz o texto livre para o nome canônico do serviço.
func ResolveService(text string) (string, bool) {
	name, ok := serviceAliases[Normalize(text)]
	return name, ok
}

func (d *KeywordDetector) Detect(
	ctx context.Context,
	sessionID string,
	text string,
) (Intent, error) {

	lower := strings.ToLower(strings.TrimSpace(text))

	for _, g := range greetings {
		if lower == g {
			return Intent{Name: IntentWelcome}, nil
		}
	}

	if strings.Contains(lower, "cancelar") {
		return Intent{Name: IntentCancel}, nil
	}

	if strings.Contains(lower, "reagendar") || strings.Contains(lower, "remarcar") {
		return Intent{Name: IntentReschedule}, nil
	}

	if name, ok := ResolveService(text); ok {
		return Intent{
			Name:       IntentService,
			Parameters: map[string]string{"servico": name},
		}, nil
	}

	return Intent{Name: IntentDefault}, nil
}

var _ Detector = (*KeywordDetector)(nil)
