package workflow

import (
	"strconv"
	"strings"
)

// ParseIndex interpreta uma escolha numerada de 1 a max, devolvendo o
// índice zero-based. Texto não numérico ou fora da faixa falha sem
// erro; quem decide o reprompt é o passo.
func ParseIndex(text string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	if n < 1 || n > max {
		return 0, false
	}
	return n - 1, true
}

// IsMoreToken reconhece o pedido de mais dias ("0" ou "mais").
func IsMoreToken(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == "0" || t == "mais"
}

func IsAffirmative(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1", "sim", "s", "ok", "confirmo", "confirmar", "yes":
		return true
	}
	return false
}

func IsNegative(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "2", "não", "nao", "n", "no":
		return true
	}
	return false
}
