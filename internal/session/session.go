// Package session keeps one in-memory state bundle per page load: the chat
// widget, the contact form and the page state they share.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/AdityaD28/portfolio/internal/chat"
	"github.com/AdityaD28/portfolio/internal/contact"
	"github.com/AdityaD28/portfolio/internal/page"
)

var sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "portfolio",
	Name:      "sessions_active",
	Help:      "Visitor sessions currently held in memory.",
})

type Session struct {
	ID      string
	Chat    *chat.Widget
	Contact *contact.Form
	Page    *page.State
	Created time.Time

	lastSeen time.Time

	mu         sync.Mutex
	closeModal func()
}

// OpenModal locks page scroll for a detail dialog. Opening a second dialog
// replaces the first without taking another lock.
func (s *Session) OpenModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeModal == nil {
		s.closeModal = s.Page.Acquire("modal")
	}
}

func (s *Session) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeModal != nil {
		s.closeModal()
		s.closeModal = nil
	}
}

// teardown releases every document-level lock the session holds.
func (s *Session) teardown() {
	s.Chat.Close()
	s.CloseModal()
	s.Page.ReleaseAll()
}

// Builders construct the per-session controllers.
type Builders struct {
	Widget func(l chat.Locker) *chat.Widget
	Form   func() *contact.Form
}

type Store struct {
	build Builders
	ttl   time.Duration
	limit int
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewStore returns an empty store. Sessions idle for longer than ttl are
// dropped by Get and Sweep.
func NewStore(b Builders, ttl time.Duration) *Store {
	return &Store{
		build:    b,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*Session{},
		stop:     make(chan struct{}),
	}
}

// SetLimit caps the number of live sessions. Creating one past the cap
// evicts the least recently seen. Zero means no cap.
func (st *Store) SetLimit(n int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.limit = n
}

func (st *Store) Create() *Session {
	p := page.New()
	now := st.now()
	s := &Session{
		ID:       uuid.NewString(),
		Page:     p,
		Chat:     st.build.Widget(p),
		Contact:  st.build.Form(),
		Created:  now,
		lastSeen: now,
	}

	var evicted *Session
	st.mu.Lock()
	if st.limit > 0 && len(st.sessions) >= st.limit {
		evicted = st.oldestLocked()
		delete(st.sessions, evicted.ID)
	}
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()

	if evicted != nil {
		evicted.teardown()
		log.Debug().Str("session", evicted.ID).Msg("evicted idle session at capacity")
	}
	sessionsActive.Set(float64(n))
	return s
}

func (st *Store) oldestLocked() *Session {
	var oldest *Session
	for _, s := range st.sessions {
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	return oldest
}

// Get returns a live session and marks it as seen.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if !ok {
		st.mu.Unlock()
		return nil, false
	}
	now := st.now()
	if st.expired(s, now) {
		delete(st.sessions, id)
		n := len(st.sessions)
		st.mu.Unlock()
		s.teardown()
		sessionsActive.Set(float64(n))
		return nil, false
	}
	s.lastSeen = now
	st.mu.Unlock()
	return s, true
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	n := len(st.sessions)
	st.mu.Unlock()

	if ok {
		s.teardown()
	}
	sessionsActive.Set(float64(n))
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (st *Store) Sweep() int {
	now := st.now()
	var dead []*Session

	st.mu.Lock()
	for id, s := range st.sessions {
		if st.expired(s, now) {
			dead = append(dead, s)
			delete(st.sessions, id)
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	for _, s := range dead {
		s.teardown()
	}
	sessionsActive.Set(float64(n))
	return len(dead)
}

// StartJanitor sweeps every interval until Close.
func (st *Store) StartJanitor(interval time.Duration) {
	st.wg.Add(1)
	go func() {
		defer st.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if n := st.Sweep(); n > 0 {
					log.Debug().Int("expired", n).Msg("swept idle sessions")
				}
			case <-st.stop:
				return
			}
		}
	}()
}

// Close stops the janitor and tears down every session.
func (st *Store) Close() {
	select {
	case <-st.stop:
		return
	default:
		close(st.stop)
	}
	st.wg.Wait()

	st.mu.Lock()
	all := st.sessions
	st.sessions = map[string]*Session{}
	st.mu.Unlock()

	for _, s := range all {
		s.teardown()
	}
	sessionsActive.Set(0)
}

func (st *Store) expired(s *Session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.lastSeen) > st.ttl
}
