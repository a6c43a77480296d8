package viewmodel

// Selection is a set of item ids that remembers insertion order.
type Selection struct {
	ids []string
	set map[string]struct{}
}

func (s *Selection) Has(id string) bool {
	_, ok := s.set[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in the order they were selected.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Selection) Toggle(id string) {
	if s.Has(id) {
		s.remove(id)
		return
	}
	if s.set == nil {
		s.set = map[string]struct{}{}
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Selection) Set(ids []string) {
	s.Clear()
	for _, id := range ids {
		if !s.Has(id) {
			s.Toggle(id)
		}
	}
}

func (s *Selection) Clear() {
	s.ids = nil
	s.set = nil
}

func (s *Selection) remove(id string) {
	delete(s.set, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}
