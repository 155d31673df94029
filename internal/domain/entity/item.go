package entity

import "time"

// InventoryItem representa un ítem del catálogo con su stock actual.
// La cantidad solo se modifica vía operaciones del ledger (AdjustQuantity);
// nunca se escribe directamente desde update administrativo.
type InventoryItem struct {
	ItemID       string // ITEM-000001, generado por secuencia
	ItemType     string
	ItemName     string
	SizeOrSource string
	GradeLevel   string
	Barcode      string // único, provisto por el usuario
	Quantity     int    // nunca negativo
	AddedBy      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
