package repository

import (
	"time"

	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

// DeliveryRepository persistencia de entregas (append-only: sin update ni delete).
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByDeliveryID(deliveryID string) (*entity.Delivery, error)
	// List devuelve todas las entregas con sus líneas, más recientes primero.
	List() ([]*entity.Delivery, error)
	// ListRange filtra por date_received dentro de [from, to]; punteros nil abren el rango.
	ListRange(from, to *time.Time) ([]*entity.Delivery, error)
	// Recent devuelve las n entregas más recientes (dashboard).
	Recent(n int) ([]*entity.Delivery, error)
}
