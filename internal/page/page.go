// Package page tracks document-level state that modal widgets change: the
// background scroll lock and the colour theme.
package page

import "sync"

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// State is safe for concurrent use. Scroll is locked while any holder has
// an unreleased lock.
type State struct {
	mu    sync.Mutex
	locks map[string]int
	theme Theme
}

func New() *State {
	return &State{locks: map[string]int{}, theme: ThemeDark}
}

// Acquire takes a named scroll lock. The returned release func is
// idempotent.
func (s *State) Acquire(name string) (release func()) {
	s.mu.Lock()
	s.locks[name]++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.locks[name] <= 1 {
				delete(s.locks, name)
				return
			}
			s.locks[name]--
		})
	}
}

func (s *State) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks) > 0
}

// ReleaseAll drops every lock. Used on teardown.
func (s *State) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks = map[string]int{}
}

func (s *State) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *State) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}

// BodyClass is the class list rendered on <body>.
func (s *State) BodyClass() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	class := "theme-" + string(s.theme)
	if len(s.locks) > 0 {
		class += " overflow-hidden"
	}
	return class
}
