package handle

import (
	"errors"
	"sync"
	"testing"
)

type testObject struct {
	name      string
	destroyed int
}

func (o *testObject) Destroy() { o.destroyed++ }

func TestRegisterGet(t *testing.T) {
	m := NewManager()
	obj := &testObject{name: "a"}
	h := Register(m, obj)

	if !h.IsValid() {
		t.Fatal("registered handle is not valid")
	}
	got, err := Get(m, h)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != obj {
		t.Errorf("Get() = %v, want %v", got, obj)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestZeroHandle(t *testing.T) {
	m := NewManager()
	var h Handle[*testObject]
	if h.IsValid() {
		t.Error("zero handle is valid")
	}
	if _, err := Get(m, h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Get(zero) error = %v, want ErrInvalidHandle", err)
	}
	if err := Retain(m, h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Retain(zero) error = %v, want ErrInvalidHandle", err)
	}
}

func TestRetainRelease(t *testing.T) {
	m := NewManager()
	obj := &testObject{}
	h := Register(m, obj)

	if err := Retain(m, h); err != nil {
		t.Fatalf("Retain() error = %v", err)
	}
	if got := RefCount(m, h); got != 2 {
		t.Errorf("RefCount() = %d, want 2", got)
	}

	freed, err := Release(m, h)
	if err != nil || freed {
		t.Fatalf("first Release() = (%v, %v), want (false, nil)", freed, err)
	}
	if obj.destroyed != 0 {
		t.Error("object destroyed while still referenced")
	}

	freed, err = Release(m, h)
	if err != nil || !freed {
		t.Fatalf("second Release() = (%v, %v), want (true, nil)", freed, err)
	}
	if obj.destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", obj.destroyed)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}

	if _, err := Release(m, h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Release(released) error = %v, want ErrStaleHandle", err)
	}
	if obj.destroyed != 1 {
		t.Errorf("destroyed = %d after extra release, want 1", obj.destroyed)
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	m := NewManager()
	first := Register(m, &testObject{name: "first"})
	if _, err := Release(m, first); err != nil {
		t.Fatal(err)
	}

	second := Register(m, &testObject{name: "second"})
	if first.index != second.index {
		t.Fatalf("slot not reused: %d vs %d", first.index, second.index)
	}
	if _, err := Get(m, first); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Get(first) error = %v, want ErrStaleHandle", err)
	}
	got, err := Get(m, second)
	if err != nil || got.name != "second" {
		t.Errorf("Get(second) = (%v, %v)", got, err)
	}
}

func TestTypeMismatch(t *testing.T) {
	m := NewManager()
	h := Register(m, "text")
	wrong := Handle[int]{index: h.index, gen: h.gen}
	if _, err := Get(m, wrong); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Get() error = %v, want ErrTypeMismatch", err)
	}
}

func TestReleaseAll(t *testing.T) {
	m := NewManager()
	objs := []*testObject{{}, {}, {}}
	var handles []Handle[*testObject]
	for _, o := range objs {
		handles = append(handles, Register(m, o))
	}
	_ = Retain(m, handles[1])

	m.ReleaseAll()

	for i, o := range objs {
		if o.destroyed != 1 {
			t.Errorf("object %d destroyed %d times, want 1", i, o.destroyed)
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if _, err := Get(m, handles[0]); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Get() after ReleaseAll error = %v, want ErrStaleHandle", err)
	}
}

func TestConcurrentRegister(t *testing.T) {
	m := NewManager()
	const goroutines = 8
	const perGoroutine = 100

	var wg sync.WaitGroup
	results := make([][]Handle[int], goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				results[g] = append(results[g], Register(m, g*perGoroutine+i))
			}
		}(g)
	}
	wg.Wait()

	if m.Len() != goroutines*perGoroutine {
		t.Fatalf("Len() = %d, want %d", m.Len(), goroutines*perGoroutine)
	}
	seen := make(map[uint64]bool)
	for g, hs := range results {
		for i, h := range hs {
			if seen[h.ID()] {
				t.Fatalf("duplicate handle %v", h)
			}
			seen[h.ID()] = true
			v, err := Get(m, h)
			if err != nil || v != g*perGoroutine+i {
				t.Errorf("Get(%v) = (%d, %v), want %d", h, v, err, g*perGoroutine+i)
			}
		}
	}
}
