package entity

import "time"

// Condiciones válidas de un ítem devuelto.
const (
	ConditionGood    = "Good"
	ConditionDamaged = "Damaged"
)

// Return registra una devolución acotada por un checkout previo.
// Inmutable una vez confirmada.
type Return struct {
	ID           string // uuid interno
	ReturnNumber string // R-YYYYMMDD-000001; sufijo acumulado global, no se reinicia por día
	ReceiptRef   string // receiptNo del checkout original
	ReturnedBy   string
	Reason       string
	Items        []ReturnItem
	DateReturned time.Time
	CreatedAt    time.Time
}

// ReturnItem línea devuelta. SizeOrSource y GradeLevel se copian de la línea
// del checkout original, no del catálogo vivo: reflejan lo que se entregó.
type ReturnItem struct {
	ItemID       string
	ItemName     string
	SizeOrSource string
	GradeLevel   string
	Quantity     int
	Condition    string // Good | Damaged
	Remarks      string
}
