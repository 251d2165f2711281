// Package storage wraps a string-keyed persistence capability with JSON
// (de)serialization. Failures never reach the caller: reads degrade to
// "absent" and writes are skipped, with a warning logged.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"artisan/pkg/logger"
)

// Backend is the raw capability a Store is built on. Get reports ok=false
// for a missing key. Clear removes every key starting with prefix; an empty
// prefix removes everything the backend owns.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

type Status int

const (
	Absent Status = iota
	Found
	Failed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Failed:
		return "failed"
	default:
		return "absent"
	}
}

// Result lets callers tell "no value" apart from "could not read".
type Result struct {
	Status Status
	Err    error
}

func (r Result) Found() bool { return r.Status == Found }

// Store is the JSON key-value adapter. A Store with a nil backend models an
// unavailable capability: every read is absent and every write is a no-op.
type Store struct {
	backend Backend
	prefix  string
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Unavailable returns a Store with no backing medium.
func Unavailable() *Store {
	return &Store{}
}

// WithPrefix returns a view of the same backend whose keys are namespaced
// under prefix. Clear on the view only removes the view's keys.
func (s *Store) WithPrefix(prefix string) *Store {
	return &Store{backend: s.backend, prefix: s.prefix + prefix}
}

func (s *Store) Available() bool {
	return s.backend != nil
}

// Get decodes the value stored under key into dst and reports whether a
// value was found. Corrupt values and backend errors read as absent.
func (s *Store) Get(ctx context.Context, key string, dst interface{}) bool {
	return s.GetResult(ctx, key, dst).Found()
}

func (s *Store) GetResult(ctx context.Context, key string, dst interface{}) Result {
	if s.backend == nil {
		return Result{Status: Absent}
	}

	raw, ok, err := s.backend.Get(ctx, s.prefix+key)
	if err != nil {
		logger.Warn("storage: read of %q failed: %v", s.prefix+key, err)
		return Result{Status: Failed, Err: err}
	}
	if !ok {
		return Result{Status: Absent}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return Result{Status: Absent}
	}
	if err := json.Unmarshal([]byte(trimmed), dst); err != nil {
		logger.Warn("storage: value under %q is not valid JSON: %v", s.prefix+key, err)
		return Result{Status: Failed, Err: fmt.Errorf("decode %q: %w", key, err)}
	}
	return Result{Status: Found}
}

// Set serializes value as JSON and stores it under key.
func (s *Store) Set(ctx context.Context, key string, value interface{}) {
	if err := s.SetErr(ctx, key, value); err != nil {
		logger.Warn("storage: %v", err)
	}
}

// SetErr is Set with the failure reported instead of absorbed.
func (s *Store) SetErr(ctx context.Context, key string, value interface{}) error {
	if s.backend == nil {
		return nil
	}
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", s.prefix+key, err)
	}
	if err := s.backend.Set(ctx, s.prefix+key, string(body)); err != nil {
		return fmt.Errorf("write %q: %w", s.prefix+key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.Delete(ctx, s.prefix+key); err != nil {
		logger.Warn("storage: remove of %q failed: %v", s.prefix+key, err)
	}
}

func (s *Store) Clear(ctx context.Context) {
	if s.backend == nil {
		return
	}
	if err := s.backend.Clear(ctx, s.prefix); err != nil {
		logger.Warn("storage: clear of %q failed: %v", s.prefix, err)
	}
}
