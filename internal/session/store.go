package session

import (
	"context"

	"github.com/BruksfildServices01/barber-bot/internal/domain/booking"
)

// Store guarda o estado de conversa por sessão. WithSession garante
// exclusão mútua por chave: duas mensagens simultâneas da mesma sessão
// nunca sobrescrevem o PendingBooking uma da outra.
//
// fn recebe a sessão atual (nova se não existir). Se ao final a sessão
// estiver vazia, a entrada é removida; caso contrário é persistida com
// o TTL renovado.
type Store interface {
	WithSession(
		ctx context.Context,
		sessionID string,
		fn func(s *booking.Session) error,
	) error

	Delete(ctx context.Context, sessionID string) error

	Close() error
}
