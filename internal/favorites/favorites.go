// Package favorites keeps the ordered list of bookmarked cities in sync with a
// key-value store.
//
// The in-memory list is authoritative for the session: storage failures are
// logged and never surfaced to callers.
package favorites

import (
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/five82/meteo/internal/kv"
)

// StorageKey is the fixed key the list is persisted under.
const StorageKey = "meteo.favorites"

// Store owns the favorites list.
type Store struct {
	mu      sync.RWMutex
	storage kv.Store
	log     *logrus.Entry
	cities  []string
}

// New creates a Store backed by storage. Call Load before querying it.
func New(storage kv.Store, log *logrus.Entry) *Store {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{storage: storage, log: log}
}

// Load replaces the in-memory list with the persisted one. Absent, unreadable
// or malformed data yields an empty list.
func (s *Store) Load() {
	cities := s.read()

	s.mu.Lock()
	s.cities = cities
	s.mu.Unlock()
}

func (s *Store) read() []string {
	data, found, err := s.storage.Get(StorageKey)
	if err != nil {
		s.log.WithError(err).Warn("read favorites failed, starting empty")
		return nil
	}
	if !found {
		return nil
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.WithError(err).Warn("stored favorites are corrupt, resetting")
		return nil
	}

	// Externally edited data may carry blanks or duplicates.
	cities := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(cities, c) {
			continue
		}
		cities = append(cities, c)
	}
	return cities
}

// Save writes the current list to storage.
func (s *Store) Save() {
	s.mu.RLock()
	data, err := json.Marshal(nonNil(s.cities))
	s.mu.RUnlock()
	if err != nil {
		s.log.WithError(err).Error("encode favorites failed")
		return
	}
	if err := s.storage.Set(StorageKey, data); err != nil {
		s.log.WithError(err).Warn("save favorites failed, keeping in-memory list")
	}
}

// Toggle removes city when it is a favorite and appends it otherwise, then
// saves. It reports whether city is a favorite afterwards. Empty city is a no-op.
func (s *Store) Toggle(city string) bool {
	if city == "" {
		return false
	}

	s.mu.Lock()
	var now bool
	if slices.Contains(s.cities, city) {
		s.cities = without(s.cities, city)
	} else {
		s.cities = append(s.cities, city)
		now = true
	}
	s.mu.Unlock()

	s.Save()
	return now
}

// Add appends city if it is not already a favorite and saves. It reports
// whether the list changed.
func (s *Store) Add(city string) bool {
	if city == "" {
		return false
	}

	s.mu.Lock()
	if slices.Contains(s.cities, city) {
		s.mu.Unlock()
		return false
	}
	s.cities = append(s.cities, city)
	s.mu.Unlock()

	s.Save()
	return true
}

// Remove filters every occurrence of city out of the list and saves.
func (s *Store) Remove(city string) {
	s.mu.Lock()
	s.cities = without(s.cities, city)
	s.mu.Unlock()

	s.Save()
}

// Contains reports whether city is a favorite. The empty city never is.
func (s *Store) Contains(city string) bool {
	if city == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.cities, city)
}

// List returns a copy of the favorites in order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cities)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cities)
}

func without(cities []string, city string) []string {
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		if c != city {
			out = append(out, c)
		}
	}
	return out
}

func nonNil(cities []string) []string {
	if cities == nil {
		return []string{}
	}
	return cities
}
