package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound = errors.New("producto no encontrado")
	ErrAlertNotFound   = errors.New("alerta no encontrada")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidFormat   = errors.New("formato de documento inválido")
	ErrKeyNotFound     = errors.New("clave no encontrada")
	ErrNoPendingScan   = errors.New("no hay lectura pendiente de confirmación")
)
