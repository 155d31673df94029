package entity

import "time"

// Checkout registra una salida de stock contra un recibo.
// Inmutable una vez confirmada.
type Checkout struct {
	ID            string // uuid interno
	CheckoutID    string // CH-000001, generado por secuencia
	TransactionNo string // TXN-YYYYMMDD-000001; el sufijo es un total acumulado, no se reinicia por día
	ReceiptNo     string
	IssuedBy      string
	Items         []CheckoutItem
	CreatedAt     time.Time
}

// CheckoutItem línea de salida con snapshot completo de los atributos del
// ítem al momento de la entrega (las devoluciones se validan contra esto).
type CheckoutItem struct {
	ItemID       string
	ItemName     string
	ItemType     string
	SizeOrSource string
	GradeLevel   string
	Barcode      string
	Quantity     int
}
