package repository

import (
	"time"

	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

// ReturnRepository persistencia de devoluciones (append-only).
type ReturnRepository interface {
	Create(ret *entity.Return) error
	GetByReturnNumber(returnNumber string) (*entity.Return, error)
	List() ([]*entity.Return, error)
	// ListRange filtra por date_returned dentro de [from, to]; punteros nil abren el rango.
	ListRange(from, to *time.Time) ([]*entity.Return, error)
	// ReturnedQuantities suma por itemId lo ya devuelto contra un recibo.
	// Se consulta fresco dentro de la misma transacción de la devolución nueva
	// para que la cota "devuelto ≤ entregado" no se valide contra datos viejos.
	ReturnedQuantities(receiptRef string) (map[string]int, error)
}
