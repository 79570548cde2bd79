package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/despensa-api/internal/domain"
)

// Memory es el backend clave-valor en memoria (tests y desarrollo).
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory crea un backend vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get devuelve una copia del valor almacenado.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("memory get %q: %w", key, domain.ErrKeyNotFound)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set guarda una copia del valor.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}
