package source

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

/*
Memory is a Source with the process memory space as underlying
backend. Definitions can be added to it with Put.
*/
type Memory struct {
	definitions map[string][]byte
	lock        *sync.RWMutex
}

// NewMemory returns a Memory source holding the given definitions
// indexed by id
func NewMemory(definitions map[string][]byte) *Memory {
	m := &Memory{
		definitions: make(map[string][]byte, len(definitions)),
		lock:        &sync.RWMutex{},
	}
	for id, d := range definitions {
		m.definitions[id] = d
	}
	return m
}

// Put stores the definition with the given id, replacing any previous
// one
func (m *Memory) Put(ctx context.Context, id string, definition []byte) error {
	return m.withLock(ctx, func(ctx context.Context) error {
		m.definitions[id] = definition
		return nil
	})
}

// Get returns the definition stored with the id
func (m *Memory) Get(ctx context.Context, id string) ([]byte, error) {
	var d []byte
	var ok bool
	err := m.withRLock(ctx, func(ctx context.Context) error {
		d, ok = m.definitions[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", id)
	}
	return d, nil
}

// Close does nothing for memory sources
func (m *Memory) Close(ctx context.Context) error {
	return nil
}

func (m *Memory) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		m.lock.Lock()
		select {
		case <-ctx.Done():
			m.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer m.lock.Unlock()
	}
	return f(ctx)
}

func (m *Memory) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		m.lock.RLock()
		select {
		case <-ctx.Done():
			m.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer m.lock.RUnlock()
	}
	return f(ctx)
}
