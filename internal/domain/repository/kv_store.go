package repository

import "context"

// KVStore es el puerto de persistencia genérico: un array JSON por clave.
// Get devuelve domain.ErrKeyNotFound (envuelto) cuando la clave no existe.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
