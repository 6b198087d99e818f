package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidDate     = errors.New("fecha inválida, formato esperado AAAA-MM-DD")
	ErrInvalidFilter   = errors.New("filtro de inventario desconocido")
	ErrUnavailable     = errors.New("fuente de datos no disponible")
	ErrMalformedSource = errors.New("archivo de datos con formato inválido")
)
