package catalog

import "strings"

// OptionValueStore holds one dimension's option values as an ordered,
// case-sensitively deduplicated set. Order is cosmetic only; dedup and
// trimming are the invariants. Two independent instances back the two
// variant dimensions of an edit session.
type OptionValueStore struct {
	values []string
}

// NewOptionValueStore creates a store seeded with the given values.
// Seeds pass through the same trim/dedup rules as Add.
func NewOptionValueStore(seed ...string) *OptionValueStore {
	s := &OptionValueStore{}
	for _, v := range seed {
		s.Add(v)
	}
	return s
}

// Add trims the value and appends it unless it is empty or already present.
// Returns true if the set changed.
func (s *OptionValueStore) Add(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, existing := range s.values {
		if existing == value {
			return false
		}
	}
	s.values = append(s.values, value)
	return true
}

// Remove deletes the value from the set. Returns true if the set changed.
func (s *OptionValueStore) Remove(value string) bool {
	value = strings.TrimSpace(value)
	for i, existing := range s.values {
		if existing == value {
			s.values = append(s.values[:i], s.values[i+1:]...)
			return true
		}
	}
	return false
}

// Values returns a copy of the ordered values.
func (s *OptionValueStore) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of values in the set.
func (s *OptionValueStore) Len() int {
	return len(s.values)
}
