// Package handle provides typed, reference-counted handles to objects owned
// by a shared [Manager].
//
// A [Handle] is a small value (slot index plus generation) that never
// exposes the object it refers to. The Manager is the only owner: objects
// are registered with a reference count of one, retained and released
// through the handle, and destroyed when the last reference goes away.
//
//	m := handle.NewManager()
//	h := handle.Register(m, buf)       // refs = 1
//	_ = handle.Retain(m, h)            // refs = 2
//	b, err := handle.Get(m, h)         // resolve
//	_, _ = handle.Release(m, h)        // refs = 1
//	freed, _ := handle.Release(m, h)   // refs = 0, buf.Destroy() called
//
// Slots are reused after release. Each reuse bumps the slot generation, so a
// handle kept past its release resolves to [ErrStaleHandle] instead of to
// whatever object took its place.
//
// Manager is safe for concurrent use.
package handle
