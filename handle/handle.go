package handle

import (
	"errors"
	"fmt"
	"sync"
)

// Errors returned when resolving handles.
var (
	// ErrInvalidHandle is returned for the zero handle or an index the
	// manager never issued.
	ErrInvalidHandle = errors.New("handle: invalid handle")

	// ErrStaleHandle is returned for a handle whose object was released.
	ErrStaleHandle = errors.New("handle: stale handle")

	// ErrTypeMismatch is returned when a slot holds a value of another type.
	ErrTypeMismatch = errors.New("handle: type mismatch")
)

// Handle is an opaque reference to a T owned by a Manager. The zero value
// is invalid.
type Handle[T any] struct {
	index uint32
	gen   uint32
}

// IsValid reports whether h was issued by a manager. It does not check
// whether the object is still alive.
func (h Handle[T]) IsValid() bool { return h.gen != 0 }

// ID returns a stable identifier for logging and map keys.
func (h Handle[T]) ID() uint64 { return uint64(h.gen)<<32 | uint64(h.index) }

func (h Handle[T]) String() string {
	if !h.IsValid() {
		return "handle(invalid)"
	}
	return fmt.Sprintf("handle(%d@%d)", h.index, h.gen)
}

// Destroyer is implemented by values that release native resources when
// their last reference is dropped.
type Destroyer interface {
	Destroy()
}

type slot struct {
	gen   uint32
	refs  uint32
	value any
}

// Manager owns registered objects and their reference counts.
//
// Manager must not be copied after creation (has mutex).
type Manager struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
	live  int
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register stores v with a reference count of one and returns its handle.
func Register[T any](m *Manager, v T) Handle[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	var index uint32
	if n := len(m.free); n > 0 {
		index = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		index = uint32(len(m.slots))
		m.slots = append(m.slots, slot{gen: 1})
	}
	s := &m.slots[index]
	s.refs = 1
	s.value = v
	m.live++
	return Handle[T]{index: index, gen: s.gen}
}

// lookup returns the live slot for h. Caller must hold m.mu.
func (m *Manager) lookup(index, gen uint32) (*slot, error) {
	if gen == 0 || int(index) >= len(m.slots) {
		return nil, ErrInvalidHandle
	}
	s := &m.slots[index]
	if s.gen != gen || s.refs == 0 {
		return nil, ErrStaleHandle
	}
	return s, nil
}

// Get resolves h to its object.
func Get[T any](m *Manager, h Handle[T]) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	s, err := m.lookup(h.index, h.gen)
	if err != nil {
		return zero, err
	}
	v, ok := s.value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: slot holds %T", ErrTypeMismatch, s.value)
	}
	return v, nil
}

// Retain adds a reference to h.
func Retain[T any](m *Manager, h Handle[T]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(h.index, h.gen)
	if err != nil {
		return err
	}
	s.refs++
	return nil
}

// Release drops a reference to h. It reports whether the object was freed;
// a freed object implementing Destroyer is destroyed before Release returns.
func Release[T any](m *Manager, h Handle[T]) (bool, error) {
	v, freed, err := m.release(h.index, h.gen)
	if err != nil || !freed {
		return false, err
	}
	if d, ok := v.(Destroyer); ok {
		d.Destroy()
	}
	return true, nil
}

func (m *Manager) release(index, gen uint32) (any, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(index, gen)
	if err != nil {
		return nil, false, err
	}
	s.refs--
	if s.refs > 0 {
		return nil, false, nil
	}
	v := s.value
	s.value = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	m.free = append(m.free, index)
	m.live--
	return v, true, nil
}

// RefCount returns the current reference count of h, or 0 if h is not live.
func RefCount[T any](m *Manager, h Handle[T]) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(h.index, h.gen)
	if err != nil {
		return 0
	}
	return s.refs
}

// Len returns the number of live objects.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// ReleaseAll drops every live object regardless of its reference count.
// Objects are destroyed in registration slot order.
func (m *Manager) ReleaseAll() {
	m.mu.Lock()
	var doomed []any
	for i := range m.slots {
		s := &m.slots[i]
		if s.refs == 0 {
			continue
		}
		doomed = append(doomed, s.value)
		s.value = nil
		s.refs = 0
		s.gen++
		if s.gen == 0 {
			s.gen = 1
		}
		m.free = append(m.free, uint32(i))
	}
	m.live = 0
	m.mu.Unlock()

	for _, v := range doomed {
		if d, ok := v.(Destroyer); ok {
			d.Destroy()
		}
	}
}
