// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// ErrHashKey is returned for shader cache keys longer than 64 bytes.
var ErrHashKey = errors.New("d3d11: shader cache key too long")

// defaultHashKey keys the bytecode hash when no key is configured.
var defaultHashKey = []byte("gogpu/gfx shader")

// CodeHash is a 64-bit keyed BLAKE2b digest of shader bytecode.
type CodeHash uint64

func (h CodeHash) String() string { return fmt.Sprintf("%016x", uint64(h)) }

type shaderEntry struct {
	code []byte
	refs int
}

// ShaderCache retains vertex shader bytecode by content hash until input
// layouts no longer need it. Every vertex shader and every program holding
// the hash owns one reference; the entry is dropped with the last one.
//
// ShaderCache is safe for concurrent use.
type ShaderCache struct {
	mu      sync.Mutex
	key     []byte
	entries map[CodeHash]*shaderEntry
}

// NewShaderCache creates a cache hashing with key (at most 64 bytes). A nil
// key selects a built-in default.
func NewShaderCache(key []byte) (*ShaderCache, error) {
	if key == nil {
		key = defaultHashKey
	}
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrHashKey, len(key))
	}
	return &ShaderCache{
		key:     append([]byte(nil), key...),
		entries: make(map[CodeHash]*shaderEntry),
	}, nil
}

// Hash returns the content hash of code.
func (c *ShaderCache) Hash(code []byte) CodeHash {
	h, err := blake2b.New(8, c.key)
	if err != nil {
		// Key length is validated by NewShaderCache.
		panic(err)
	}
	_, _ = h.Write(code)
	return CodeHash(binary.LittleEndian.Uint64(h.Sum(nil)))
}

// CacheRef is one reference on a cache entry. It stays tied to the entry
// it was taken on: once that entry is evicted, dropping the reference has
// no effect, even if the same bytecode has been cached again.
type CacheRef struct {
	hash  CodeHash
	entry *shaderEntry
}

// Hash returns the hash the reference was taken on.
func (r CacheRef) Hash() CodeHash { return r.hash }

// Valid reports whether r was taken on an entry.
func (r CacheRef) Valid() bool { return r.entry != nil }

// Insert retains a copy of code under hash and adds one reference. Inserting
// the same bytecode again only adds a reference.
func (c *ShaderCache) Insert(hash CodeHash, code []byte) CacheRef {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[hash]; ok {
		e.refs++
		return CacheRef{hash: hash, entry: e}
	}
	e := &shaderEntry{
		code: append([]byte(nil), code...),
		refs: 1,
	}
	c.entries[hash] = e
	return CacheRef{hash: hash, entry: e}
}

// Lookup returns the bytecode cached under hash. The returned slice must
// not be modified.
func (c *ShaderCache) Lookup(hash CodeHash) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[hash]
	if !ok {
		return nil, false
	}
	return e.code, true
}

// Retain adds a reference to the live entry of hash. It reports false if
// hash is not cached.
func (c *ShaderCache) Retain(hash CodeHash) (CacheRef, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[hash]
	if !ok {
		return CacheRef{}, false
	}
	e.refs++
	return CacheRef{hash: hash, entry: e}, true
}

// Drop releases ref and deletes its entry when no references remain. A
// reference on an evicted entry is ignored.
func (c *ShaderCache) Drop(ref CacheRef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ref.hash]
	if !ok || e != ref.entry {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(c.entries, ref.hash)
	}
}

// Evict deletes an entry regardless of its references. Pipelines created
// afterwards from programs using hash fail with a cache miss.
func (c *ShaderCache) Evict(hash CodeHash) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[hash]
	delete(c.entries, hash)
	return ok
}

// Refs returns the reference count of hash, 0 if not cached.
func (c *ShaderCache) Refs(hash CodeHash) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[hash]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of cached entries.
func (c *ShaderCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
