package session

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-bot/internal/domain/booking"
)

type memoryEntry struct {
	mu       sync.Mutex
	sess     booking.Session
	lastSeen time.Time
}

// MemoryStore guarda sessões em um mapa com lock por chave e varredura
// periódica de expiração. É o store padrão quando não há Redis.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration

	stop chan struct{}
	once sync.Once

	// now é trocável nos testes.
	now func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
		now:     time.Now,
	}

	go s.sweeper()
	return s
}

func (s *MemoryStore) sweeper() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.EvictExpired()
		case <-s.stop:
			return
		}
	}
}

// EvictExpired remove toda sessão sem turno há pelo menos TTL. Entrada
// com turno em andamento (lock ocupado) fica para a próxima varredura.
func (s *MemoryStore) EvictExpired() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if now.Sub(e.lastSeen) < s.ttl {
			continue
		}
		if !e.mu.TryLock() {
			continue
		}
		delete(s.entries, id)
		e.mu.Unlock()
	}
}

func (s *MemoryStore) acquire(sessionID string) *memoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if ok && s.now().Sub(e.lastSeen) >= s.ttl {
		// Expirada e ociosa: o próximo turno recomeça do zero. Se o
		// lock está ocupado o turno em andamento renova lastSeen.
		if e.mu.TryLock() {
			delete(s.entries, sessionID)
			e.mu.Unlock()
			ok = false
		}
	}

	if !ok {
		e = &memoryEntry{lastSeen: s.now()}
		s.entries[sessionID] = e
	}

	return e
}

// lockEntry devolve a entrada da sessão com o lock tomado, garantindo
// que ela ainda é a entrada corrente do mapa. Se a varredura removeu a
// entrada entre o acquire e o lock, tenta de novo na entrada nova.
func (s *MemoryStore) lockEntry(sessionID string) *memoryEntry {
	for {
		e := s.acquire(sessionID)
		e.mu.Lock()

		s.mu.Lock()
		cur := s.entries[sessionID]
		if cur == nil {
			s.entries[sessionID] = e
			cur = e
		}
		s.mu.Unlock()

		if cur == e {
			return e
		}
		e.mu.Unlock()
	}
}

func (s *MemoryStore) WithSession(
	ctx context.Context,
	sessionID string,
	fn func(sess *booking.Session) error,
) error {

	e := s.lockEntry(sessionID)
	defer e.mu.Unlock()

	if err := fn(&e.sess); err != nil {
		return err
	}

	// lastSeen só muda sob o lock do mapa; a varredura lê sob o mesmo.
	s.mu.Lock()
	e.lastSeen = s.now()
	if e.sess.Empty() && s.entries[sessionID] == e {
		delete(s.entries, sessionID)
	}
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

var _ Store = (*MemoryStore)(nil)
