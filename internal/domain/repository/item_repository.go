package repository

import "github.com/uips-online/edutrack-api/internal/domain/entity"

// ItemFilter filtros de listado de catálogo.
// Limit == 0 significa sin paginación (traer todo).
type ItemFilter struct {
	Search   string // busca en nombre, tipo, talla/fuente, grado y barcode
	ItemType string // filtra por tipo exacto; vacío o "All" = todos
	Limit    int
	Offset   int
}

// ItemRepository define el puerto de persistencia del catálogo (DIP).
// AdjustQuantity es el único camino de mutación de Quantity; dentro de una
// transacción bloquea la fila (SELECT FOR UPDATE) para serializar checkouts
// concurrentes sobre el mismo ítem.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(itemID string) (*entity.InventoryItem, error)
	GetByBarcode(barcode string) (*entity.InventoryItem, error)
	// ExistingBarcodes devuelve cuáles de los barcodes dados ya están en el catálogo.
	ExistingBarcodes(barcodes []string) (map[string]bool, error)
	List(f ItemFilter) (items []*entity.InventoryItem, total int, err error)
	// Update modifica atributos administrativos; nunca toca Quantity.
	Update(item *entity.InventoryItem) error
	Delete(itemID string) error
	// AdjustQuantity aplica un delta al stock y devuelve el ítem leído bajo lock
	// (con la cantidad previa al ajuste, para snapshots de movimiento).
	// Errores: NotFoundError si no existe, InsufficientStockError si quedaría negativo.
	AdjustQuantity(itemID string, delta int) (*entity.InventoryItem, error)
}
