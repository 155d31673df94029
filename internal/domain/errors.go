package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrConflict          = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverReturn        = errors.New("devolución excede lo entregado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// NotFoundError indica que un recurso referenciado no existe, con detalle
// suficiente para que el cliente muestre un mensaje específico.
type NotFoundError struct {
	Resource string // "item", "checkout", "return", "delivery", "user"
	Ref      string // identificador buscado
	Detail   string // contexto extra opcional (ej. "not part of checkout RCPT-1")
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %s", e.Resource, e.Ref, e.Detail)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.Ref)
}

// Is permite errors.Is(err, domain.ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError indica campos requeridos ausentes o malformados.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientStockError indica que un checkout dejaría el stock en negativo.
// Lleva nombre del ítem y cantidades para el mensaje al usuario.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s. Available: %d, requested: %d",
		e.ItemName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// OverReturnError indica que la devolución acumulada superaría lo entregado
// en el checkout original para ese ítem.
type OverReturnError struct {
	ItemID         string
	ItemName       string
	RequestedTotal int // ya devuelto + solicitado en esta devolución
	Issued         int // cantidad en la línea del checkout original
}

func (e *OverReturnError) Error() string {
	return fmt.Sprintf("%s: trying to return %d but only %d were issued",
		e.ItemName, e.RequestedTotal, e.Issued)
}

func (e *OverReturnError) Is(target error) bool { return target == ErrOverReturn }
