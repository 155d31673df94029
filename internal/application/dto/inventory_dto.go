package dto

import (
	"time"

	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

// CreateItemRequest alta simple de ítem de catálogo.
type CreateItemRequest struct {
	ItemType     string `json:"itemType"`
	ItemName     string `json:"itemName"`
	SizeOrSource string `json:"sizeOrSource"`
	GradeLevel   string `json:"gradeLevel"`
	Barcode      string `json:"barcode"`
	AddedBy      string `json:"addedBy"`
}

// UpdateItemRequest edición administrativa; quantity queda fuera a propósito.
type UpdateItemRequest struct {
	ItemType     *string `json:"itemType"`
	ItemName     *string `json:"itemName"`
	SizeOrSource *string `json:"sizeOrSource"`
	GradeLevel   *string `json:"gradeLevel"`
	Barcode      *string `json:"barcode"`
}

// ItemResponse ítem de catálogo con su stock vigente.
type ItemResponse struct {
	ItemID       string    `json:"itemId"`
	ItemType     string    `json:"itemType"`
	ItemName     string    `json:"itemName"`
	SizeOrSource string    `json:"sizeOrSource"`
	GradeLevel   string    `json:"gradeLevel"`
	Barcode      string    `json:"barcode"`
	Quantity     int       `json:"quantity"`
	AddedBy      string    `json:"addedBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ItemListResponse listado paginado de catálogo.
type ItemListResponse struct {
	Data       []ItemResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// BulkItemRow fila de importación masiva tal como llega del cliente.
type BulkItemRow struct {
	ItemType     string `json:"itemType"`
	ItemName     string `json:"itemName"`
	SizeOrSource string `json:"sizeOrSource"`
	GradeLevel   string `json:"gradeLevel"`
	Barcode      string `json:"barcode"`
	Quantity     int    `json:"quantity"`
	AddedBy      string `json:"addedBy"`
}

// BulkInsertRequest importación masiva de catálogo.
type BulkInsertRequest struct {
	Items                 []BulkItemRow `json:"items"`
	CreateInitialDelivery bool          `json:"createInitialDelivery"`
	DeliveryNumber        string        `json:"deliveryNumber"`
}

// NewItemResponse mapea la entidad de catálogo a la respuesta pública.
func NewItemResponse(it *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ItemID:       it.ItemID,
		ItemType:     it.ItemType,
		ItemName:     it.ItemName,
		SizeOrSource: it.SizeOrSource,
		GradeLevel:   it.GradeLevel,
		Barcode:      it.Barcode,
		Quantity:     it.Quantity,
		AddedBy:      it.AddedBy,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
