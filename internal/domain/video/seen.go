package video

import "sort"

// SeenSet holds the ids of entries that were already evaluated.
type SeenSet struct {
	ids map[string]struct{}
}

// NewSeenSet constructs a SeenSet holding the given ids.
func NewSeenSet(ids ...string) *SeenSet {
	s := &SeenSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id was seen.
func (s *SeenSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Add marks id as seen. Empty ids are ignored.
func (s *SeenSet) Add(id string) {
	if id == "" {
		return
	}
	s.ids[id] = struct{}{}
}

// Remove drops the given ids and returns how many were present.
func (s *SeenSet) Remove(ids ...string) int {
	removed := 0
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			delete(s.ids, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of ids.
func (s *SeenSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Clone returns an independent copy.
func (s *SeenSet) Clone() *SeenSet {
	return NewSeenSet(s.IDs()...)
}

// IDs returns a sorted snapshot of all ids.
func (s *SeenSet) IDs() []string {
	if s == nil {
		return []string{}
	}
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
