package gadgets

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// memStore is an in-memory Store enforcing per-tenant name/skin uniqueness.
type memStore struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*Gadget
	seq     int
	order   map[uuid.UUID]int
	updates int
	failErr error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uuid.UUID]*Gadget), order: make(map[uuid.UUID]int)}
}

func (m *memStore) FindByID(appID string, id uuid.UUID) (*Gadget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	g, ok := m.rows[id]
	if !ok || g.AppID != appID {
		return nil, ErrGadgetNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memStore) Find(appID string, f Filter) ([]Gadget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []Gadget
	for _, g := range m.rows {
		if g.AppID != appID {
			continue
		}
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		if f.Status == "" && f.ExcludeStatus != "" && g.Status == f.ExcludeStatus {
			continue
		}
		if f.UserID != nil && (g.UserID == nil || *g.UserID != *f.UserID) {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out, nil
}

func (m *memStore) clash(g *Gadget, name, skin string) bool {
	for _, other := range m.rows {
		if other.ID == g.ID || other.AppID != g.AppID {
			continue
		}
		if other.Name == name || other.Skin == skin {
			return true
		}
	}
	return false
}

func (m *memStore) Create(g *Gadget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if m.clash(g, g.Name, g.Skin) {
		return ErrIdentityTaken
	}
	cp := *g
	m.rows[g.ID] = &cp
	m.seq++
	m.order[g.ID] = m.seq
	return nil
}

func (m *memStore) Update(appID string, id uuid.UUID, patch Patch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return false, m.failErr
	}
	g, ok := m.rows[id]
	if !ok || g.AppID != appID {
		return false, nil
	}
	next := *g
	patch.Apply(&next)
	if m.clash(&next, next.Name, next.Skin) {
		return false, ErrIdentityTaken
	}
	m.rows[id] = &next
	m.updates++
	return true, nil
}

func (m *memStore) Delete(appID string, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.rows[id]
	if !ok || g.AppID != appID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func (m *memStore) get(id uuid.UUID) Gadget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.rows[id]
}

// seqInts returns queued values in order, clamped into the requested range.
type seqInts struct {
	values []int
	next   int
	err    error
}

func (s *seqInts) IntRange(min, max int) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(s.values) == 0 {
		return min, nil
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v, nil
}

// fixedNames hands out names and skins from fixed lists in turn.
type fixedNames struct {
	names, skins []string
	i, j         int
}

func (f *fixedNames) Name() (string, error) {
	if f.i >= len(f.names) {
		return "", errors.New("out of names")
	}
	n := f.names[f.i]
	f.i++
	return n, nil
}

func (f *fixedNames) Skin() (string, error) {
	if f.j >= len(f.skins) {
		return "", errors.New("out of skins")
	}
	s := f.skins[f.j]
	f.j++
	return s, nil
}

// countingNames yields gadget-1/skin-1, gadget-2/skin-2, ...
type countingNames struct {
	n, m int
}

func (c *countingNames) Name() (string, error) {
	c.n++
	return fmt.Sprintf("gadget-%d", c.n), nil
}

func (c *countingNames) Skin() (string, error) {
	c.m++
	return fmt.Sprintf("skin-%d", c.m), nil
}
