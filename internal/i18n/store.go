package i18n

import (
	"log/slog"
	"sync"
)

// Persister saves the current locale outside the process. The store calls it
// from Set; persistence is a side effect of the setter, never of the
// localization logic itself.
type Persister interface {
	SaveLocale(loc Locale) error
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(loc Locale) error

// SaveLocale implements Persister.
func (f PersisterFunc) SaveLocale(loc Locale) error {
	return f(loc)
}

// Store holds the site-wide current locale with explicit subscriptions.
// Set is synchronous: the new value is visible to Current and to every
// subscriber before Set returns.
type Store struct {
	mu      sync.RWMutex
	current Locale
	persist Persister
	logger  *slog.Logger
	subs    map[int]func(Locale)
	nextID  int
}

// NewStore creates a locale store. The initial value is parsed through
// ParseLocale, so an unrecognized persisted value degrades to the default
// locale instead of failing.
func NewStore(initial string, persist Persister, logger *slog.Logger) *Store {
	return &Store{
		current: ParseLocale(initial),
		persist: persist,
		logger:  logger,
		subs:    make(map[int]func(Locale)),
	}
}

// Current returns the current locale.
func (s *Store) Current() Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches the current locale, persists it, and notifies subscribers.
// Values outside the supported set are coerced to the default locale.
func (s *Store) Set(loc Locale) {
	loc = ParseLocale(string(loc))

	s.mu.Lock()
	if s.current == loc {
		s.mu.Unlock()
		return
	}
	s.current = loc
	subs := make([]func(Locale), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.SaveLocale(loc); err != nil && s.logger != nil {
			s.logger.Warn("failed to persist locale", "locale", loc, "error", err)
		}
	}

	for _, fn := range subs {
		fn(loc)
	}
}

// Subscribe registers a callback invoked on every locale change.
// Returns an id for Unsubscribe.
func (s *Store) Subscribe(fn func(Locale)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.subs[s.nextID] = fn
	return s.nextID
}

// Unsubscribe removes a subscription by id.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
