package entity

import "time"

// Delivery registra una entrada de stock (entrega de proveedor).
// Inmutable una vez confirmada: el ledger no expone update ni delete.
type Delivery struct {
	ID             string // uuid interno
	DeliveryID     string // DEL-000001, generado por secuencia
	DeliveryNumber string // referencia del documento del proveedor
	Supplier       string
	ReceivedBy     string
	DateReceived   time.Time
	Items          []DeliveryItem
	CreatedAt      time.Time
}

// DeliveryItem línea de entrega con los atributos del ítem copiados
// al momento del movimiento (snapshot, no referencia al catálogo vivo).
type DeliveryItem struct {
	ItemID       string
	ItemName     string
	ItemType     string
	SizeOrSource string
	GradeLevel   string
	Barcode      string
	Quantity     int
}
