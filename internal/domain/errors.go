package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los casos de uso envuelven
// estos centinelas con fmt.Errorf("%w: detalle") y los handlers los mapean a HTTP.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrInvariantViolation = errors.New("violación de invariante del libro de piso")
	ErrQuantityMismatch   = errors.New("las cantidades no cuadran")
	ErrInvalidTransition  = errors.New("transición de piso inválida")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
)

// ErrOverCompletion: completar más de lo recibido en un piso distinto de tejido.
// Es una violación de invariante; errors.Is(err, ErrInvariantViolation) también lo detecta.
var ErrOverCompletion = fmt.Errorf("%w: completado excede lo recibido", ErrInvariantViolation)
