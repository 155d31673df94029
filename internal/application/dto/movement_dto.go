package dto

import (
	"time"

	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

// ───────────────────────── Entregas ─────────────────────────

// DeliveryLineRequest línea de entrega. Los atributos descriptivos son
// opcionales: si faltan se completan desde el catálogo.
type DeliveryLineRequest struct {
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	ItemType     string `json:"itemType"`
	SizeOrSource string `json:"sizeOrSource"`
	GradeLevel   string `json:"gradeLevel"`
	Barcode      string `json:"barcode"`
	Quantity     int    `json:"quantity"`
}

// CreateDeliveryRequest registro de una entrega entrante.
type CreateDeliveryRequest struct {
	DeliveryNumber string                `json:"deliveryNumber"`
	Supplier       string                `json:"supplier"`
	ReceivedBy     string                `json:"receivedBy"`
	Items          []DeliveryLineRequest `json:"items"`
}

// DeliveryLineResponse línea de entrega con su snapshot.
type DeliveryLineResponse struct {
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	ItemType     string `json:"itemType"`
	SizeOrSource string `json:"sizeOrSource"`
	GradeLevel   string `json:"gradeLevel"`
	Barcode      string `json:"barcode"`
	Quantity     int    `json:"quantity"`
}

// DeliveryResponse entrega registrada.
type DeliveryResponse struct {
	DeliveryID     string                 `json:"deliveryId"`
	DeliveryNumber string                 `json:"deliveryNumber"`
	Supplier       string                 `json:"supplier"`
	ReceivedBy     string                 `json:"receivedBy"`
	DateReceived   time.Time              `json:"dateReceived"`
	Items          []DeliveryLineResponse `json:"items"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// ───────────────────────── Salidas ─────────────────────────

// CheckoutLineRequest línea de salida: solo ítem y cantidad, el resto
// se toma del catálogo al momento de la operación.
type CheckoutLineRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CreateCheckoutRequest registro de una salida de stock.
type CreateCheckoutRequest struct {
	ReceiptNo string                `json:"receiptNo"`
	IssuedBy  string                `json:"issuedBy"`
	Items     []CheckoutLineRequest `json:"items"`
}

// CheckoutLineResponse línea de salida con su snapshot.
type CheckoutLineResponse struct {
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	ItemType     string `json:"itemType"`
	SizeOrSource string `json:"sizeOrSource"`
	GradeLevel   string `json:"gradeLevel"`
	Barcode      string `json:"barcode"`
	Quantity     int    `json:"quantity"`
}

// CheckoutResponse salida registrada.
type CheckoutResponse struct {
	CheckoutID    string                 `json:"checkoutId"`
	TransactionNo string                 `json:"transactionNo"`
	ReceiptNo     string                 `json:"receiptNo"`
	IssuedBy      string                 `json:"issuedBy"`
	Items         []CheckoutLineResponse `json:"items"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ───────────────────────── Devoluciones ─────────────────────────

// ReturnLineRequest línea de devolución.
type ReturnLineRequest struct {
	ItemID    string `json:"itemId"`
	ItemName  string `json:"itemName"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"` // "Good" | "Damaged"; vacío = Good
	Remarks   string `json:"remarks"`
}

// CreateReturnRequest registro de una devolución contra un recibo de salida.
type CreateReturnRequest struct {
	ReceiptRef string              `json:"receiptRef"`
	ReturnedBy string              `json:"returnedBy"`
	Reason     string              `json:"reason"`
	Items      []ReturnLineRequest `json:"items"`
}

// ReturnLineResponse línea de devolución con su snapshot.
type ReturnLineResponse struct {
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	SizeOrSource string `json:"sizeOrSource"`
	GradeLevel   string `json:"gradeLevel"`
	Quantity     int    `json:"quantity"`
	Condition    string `json:"condition"`
	Remarks      string `json:"remarks"`
}

// ReturnResponse devolución registrada.
type ReturnResponse struct {
	ReturnNumber string               `json:"returnNumber"`
	ReceiptRef   string               `json:"receiptRef"`
	ReturnedBy   string               `json:"returnedBy"`
	Reason       string               `json:"reason"`
	Items        []ReturnLineResponse `json:"items"`
	DateReturned time.Time            `json:"dateReturned"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// ───────────────────────── Mapeos ─────────────────────────

// NewDeliveryResponse mapea la entidad de entrega.
func NewDeliveryResponse(d *entity.Delivery) DeliveryResponse {
	items := make([]DeliveryLineResponse, len(d.Items))
	for i, it := range d.Items {
		items[i] = DeliveryLineResponse{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			ItemType:     it.ItemType,
			SizeOrSource: it.SizeOrSource,
			GradeLevel:   it.GradeLevel,
			Barcode:      it.Barcode,
			Quantity:     it.Quantity,
		}
	}
	return DeliveryResponse{
		DeliveryID:     d.DeliveryID,
		DeliveryNumber: d.DeliveryNumber,
		Supplier:       d.Supplier,
		ReceivedBy:     d.ReceivedBy,
		DateReceived:   d.DateReceived,
		Items:          items,
		CreatedAt:      d.CreatedAt,
	}
}

// NewCheckoutResponse mapea la entidad de salida.
func NewCheckoutResponse(co *entity.Checkout) CheckoutResponse {
	items := make([]CheckoutLineResponse, len(co.Items))
	for i, it := range co.Items {
		items[i] = CheckoutLineResponse{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			ItemType:     it.ItemType,
			SizeOrSource: it.SizeOrSource,
			GradeLevel:   it.GradeLevel,
			Barcode:      it.Barcode,
			Quantity:     it.Quantity,
		}
	}
	return CheckoutResponse{
		CheckoutID:    co.CheckoutID,
		TransactionNo: co.TransactionNo,
		ReceiptNo:     co.ReceiptNo,
		IssuedBy:      co.IssuedBy,
		Items:         items,
		CreatedAt:     co.CreatedAt,
	}
}

// NewReturnResponse mapea la entidad de devolución.
func NewReturnResponse(r *entity.Return) ReturnResponse {
	items := make([]ReturnLineResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ReturnLineResponse{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			SizeOrSource: it.SizeOrSource,
			GradeLevel:   it.GradeLevel,
			Quantity:     it.Quantity,
			Condition:    it.Condition,
			Remarks:      it.Remarks,
		}
	}
	return ReturnResponse{
		ReturnNumber: r.ReturnNumber,
		ReceiptRef:   r.ReceiptRef,
		ReturnedBy:   r.ReturnedBy,
		Reason:       r.Reason,
		Items:        items,
		DateReturned: r.DateReturned,
		CreatedAt:    r.CreatedAt,
	}
}
