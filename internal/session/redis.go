package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-bot/internal/domain/booking"
)

const redisKeyPrefix = "bot:session:"

// RedisStore persiste sessões como JSON com TTL nativo do Redis. A
// exclusão mútua por sessão é em processo (uma instância da API atende
// o webhook); o Redis entra pela durabilidade e pela expiração.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock é contado por referência: a entrada sai do mapa quando o
// último turno solta o lock, mantendo o mapa do tamanho das sessões
// ativas no instante, não do histórico.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		locks:  make(map[string]*sessionLock),
	}
}

func (s *RedisStore) lockFor(sessionID string) *sessionLock {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

func (s *RedisStore) unlockFor(sessionID string, l *sessionLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, sessionID)
	}
	s.mu.Unlock()
}

func (s *RedisStore) WithSession(
	ctx context.Context,
	sessionID string,
	fn func(sess *booking.Session) error,
) error {

	l := s.lockFor(sessionID)
	defer s.unlockFor(sessionID, l)

	key := redisKeyPrefix + sessionID

	var sess booking.Session
	data, err := s.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// sessão nova
	case err != nil:
		return err
	default:
		if err := json.Unmarshal([]byte(data), &sess); err != nil {
			// Payload corrompido vira sessão nova em vez de travar o bot.
			sess = booking.Session{}
		}
	}

	if err := fn(&sess); err != nil {
		return err
	}

	if sess.Empty() {
		return s.client.Del(ctx, key).Err()
	}

	b, err := json.Marshal(&sess)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
