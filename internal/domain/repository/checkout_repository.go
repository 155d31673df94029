package repository

import (
	"time"

	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

// CheckoutRepository persistencia de salidas (append-only).
type CheckoutRepository interface {
	Create(checkout *entity.Checkout) error
	// GetByReceiptNo busca el checkout original de una devolución.
	GetByReceiptNo(receiptNo string) (*entity.Checkout, error)
	// GetByRef busca por receiptNo, checkoutId o transactionNo indistintamente.
	GetByRef(ref string) (*entity.Checkout, error)
	List() ([]*entity.Checkout, error)
	// ListRange filtra por created_at dentro de [from, to]; punteros nil abren el rango.
	ListRange(from, to *time.Time) ([]*entity.Checkout, error)
	Recent(n int) ([]*entity.Checkout, error)
}
