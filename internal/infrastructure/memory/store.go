// Package memory implementa los repositorios en memoria (desarrollo y tests).
package memory

import (
	"sync"

	"github.com/jhoicas/delivery-accounts/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
// Los repositorios guardan y devuelven copias: nadie fuera del Store toca sus punteros.
type Store struct {
	mu            sync.RWMutex
	accounts      map[string]entity.Account // id -> cuenta
	byEmail       map[string]string         // email -> id
	verifications map[string]entity.Verification
	byCode        map[string]string // code -> id

	txMu sync.Mutex // serializa las unidades de trabajo de TxRunner
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]entity.Account),
		byEmail:       make(map[string]string),
		verifications: make(map[string]entity.Verification),
		byCode:        make(map[string]string),
	}
}

type snapshot struct {
	accounts      map[string]entity.Account
	byEmail       map[string]string
	verifications map[string]entity.Verification
	byCode        map[string]string
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		accounts:      cloneMap(s.accounts),
		byEmail:       cloneMap(s.byEmail),
		verifications: cloneMap(s.verifications),
		byCode:        cloneMap(s.byCode),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = snap.accounts
	s.byEmail = snap.byEmail
	s.verifications = snap.verifications
	s.byCode = snap.byCode
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
