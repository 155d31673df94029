package dto

import "time"

// DeliveryReportRow fila aplanada del reporte de entregas (una por línea).
type DeliveryReportRow struct {
	DeliveryID     string    `json:"deliveryId"`
	DeliveryNumber string    `json:"deliveryNumber"`
	Supplier       string    `json:"supplier"`
	ReceivedBy     string    `json:"receivedBy"`
	DateReceived   time.Time `json:"dateReceived"`
	ItemID         string    `json:"itemId"`
	ItemName       string    `json:"itemName"`
	ItemType       string    `json:"itemType"`
	SizeOrSource   string    `json:"sizeOrSource"`
	GradeLevel     string    `json:"gradeLevel"`
	Quantity       int       `json:"quantity"`
}

// CheckoutReportRow fila aplanada del reporte de salidas.
type CheckoutReportRow struct {
	CheckoutID    string    `json:"checkoutId"`
	TransactionNo string    `json:"transactionNo"`
	ReceiptNo     string    `json:"receiptNo"`
	IssuedBy      string    `json:"issuedBy"`
	Date          time.Time `json:"date"`
	ItemID        string    `json:"itemId"`
	ItemName      string    `json:"itemName"`
	ItemType      string    `json:"itemType"`
	SizeOrSource  string    `json:"sizeOrSource"`
	GradeLevel    string    `json:"gradeLevel"`
	Quantity      int       `json:"quantity"`
}

// ReturnReportRow fila aplanada del reporte de devoluciones.
type ReturnReportRow struct {
	ReturnNumber string    `json:"returnNumber"`
	ReceiptRef   string    `json:"receiptRef"`
	ReturnedBy   string    `json:"returnedBy"`
	Reason       string    `json:"reason"`
	DateReturned time.Time `json:"dateReturned"`
	ItemID       string    `json:"itemId"`
	ItemName     string    `json:"itemName"`
	SizeOrSource string    `json:"sizeOrSource"`
	GradeLevel   string    `json:"gradeLevel"`
	Quantity     int       `json:"quantity"`
	Condition    string    `json:"condition"`
	Remarks      string    `json:"remarks"`
}

// SummaryReportRow movimiento neto por ítem en el período.
type SummaryReportRow struct {
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	ItemType     string `json:"itemType"`
	SizeOrSource string `json:"sizeOrSource"`
	GradeLevel   string `json:"gradeLevel"`
	Delivered    int    `json:"delivered"`
	CheckedOut   int    `json:"checkedOut"`
	Returned     int    `json:"returned"`
	NetChange    int    `json:"netChange"`
	CurrentStock int    `json:"currentStock"`
}

// ReportResponse sobre genérico de reporte paginado.
type ReportResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
