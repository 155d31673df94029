// Package inventory contiene los casos de uso del catálogo: alta simple,
// importación masiva, listado con búsqueda y las operaciones administrativas.
// El stock no se toca aquí salvo la cantidad inicial de la importación; todo
// movimiento posterior pasa por el ledger.
package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/uips-online/edutrack-api/internal/application/ledger"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
	"github.com/uips-online/edutrack-api/pkg/logger"
)

// UseCase casos de uso del catálogo.
type UseCase struct {
	txRunner     ledger.TxRunner
	itemRepo     repository.ItemRepository
	deliveryRepo repository.DeliveryRepository
	seqRepo      repository.SequenceRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(
	txRunner ledger.TxRunner,
	itemRepo repository.ItemRepository,
	deliveryRepo repository.DeliveryRepository,
	seqRepo repository.SequenceRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		deliveryRepo: deliveryRepo,
		seqRepo:      seqRepo,
		log:          log,
	}
}

// AddItemInput entrada para alta simple de ítem.
type AddItemInput struct {
	ItemType     string
	ItemName     string
	SizeOrSource string
	GradeLevel   string
	Barcode      string
	AddedBy      string
}

// AddItem crea un ítem con cantidad 0 y un itemId secuencial.
// Barcode duplicado → ErrConflict.
func (uc *UseCase) AddItem(ctx context.Context, input AddItemInput) (*entity.InventoryItem, error) {
	if input.ItemType == "" || input.ItemName == "" || input.Barcode == "" || input.AddedBy == "" {
		return nil, &domain.ValidationError{Msg: "itemType, itemName, barcode, and addedBy are required"}
	}
	existing, err := uc.itemRepo.GetByBarcode(input.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	seq, err := uc.seqRepo.Next(repository.SeqInventory)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ItemID:       ledger.FormatItemID(seq),
		ItemType:     input.ItemType,
		ItemName:     input.ItemName,
		SizeOrSource: input.SizeOrSource,
		GradeLevel:   input.GradeLevel,
		Barcode:      input.Barcode,
		Quantity:     0,
		AddedBy:      input.AddedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// List lista el catálogo con búsqueda, filtro por tipo y paginación.
func (uc *UseCase) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	return uc.itemRepo.List(f)
}

// GetByBarcode busca un ítem por barcode.
func (uc *UseCase) GetByBarcode(ctx context.Context, barcode string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Resource: "item", Ref: barcode}
	}
	return item, nil
}

// UpdateItemInput campos administrativos editables. Quantity no está aquí:
// solo el ledger mueve stock.
type UpdateItemInput struct {
	ItemType     *string
	ItemName     *string
	SizeOrSource *string
	GradeLevel   *string
	Barcode      *string
}

// UpdateItem actualiza atributos administrativos de un ítem.
func (uc *UseCase) UpdateItem(ctx context.Context, itemID string, input UpdateItemInput) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Resource: "item", Ref: itemID}
	}
	if input.ItemType != nil {
		item.ItemType = *input.ItemType
	}
	if input.ItemName != nil {
		item.ItemName = *input.ItemName
	}
	if input.SizeOrSource != nil {
		item.SizeOrSource = *input.SizeOrSource
	}
	if input.GradeLevel != nil {
		item.GradeLevel = *input.GradeLevel
	}
	if input.Barcode != nil {
		item.Barcode = *input.Barcode
	}
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem elimina un ítem del catálogo. Los registros de movimiento que lo
// referencian no se tocan: conservan su snapshot desnormalizado.
func (uc *UseCase) DeleteItem(ctx context.Context, itemID string) error {
	return uc.itemRepo.Delete(itemID)
}

// BulkItemInput fila de importación masiva.
type BulkItemInput struct {
	ItemType     string
	ItemName     string
	SizeOrSource string
	GradeLevel   string
	Barcode      string
	Quantity     int
	AddedBy      string
}

// BulkAddInput entrada de la importación masiva. La lista llega ya parseada
// (el parsing CSV/Excel es responsabilidad del cliente).
type BulkAddInput struct {
	Items                 []BulkItemInput
	CreateInitialDelivery bool
	DeliveryNumber        string
}

// FailedRow fila rechazada durante la importación, con el motivo.
type FailedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// BulkAddResult resultado de la importación masiva.
type BulkAddResult struct {
	Count             int         `json:"count"`
	FailedRows        []FailedRow `json:"failedRows"`
	Total             int         `json:"total"`
	CreatedDeliveryID string      `json:"createdDeliveryId,omitempty"`
}

// BulkAddItems inserta un lote de ítems nuevos. Valida campos requeridos,
// barcodes duplicados dentro del lote y contra el catálogo; las filas
// inválidas se reportan en FailedRows sin frenar las válidas. Las inserciones
// válidas confirman en una sola transacción. Después del commit, si se pidió,
// crea una entrega sintética que resume el lote (supplier "Initial Inventory
// Import") en modo best-effort: su falla se registra en el log pero nunca
// revierte ni falla la importación.
func (uc *UseCase) BulkAddItems(ctx context.Context, input BulkAddInput) (*BulkAddResult, error) {
	if len(input.Items) == 0 {
		return nil, &domain.ValidationError{Msg: "no items provided for bulk insert"}
	}

	result := &BulkAddResult{Total: len(input.Items)}

	// Normalización y validación por fila + duplicados dentro del lote.
	type cleanRow struct {
		index int
		item  BulkItemInput
	}
	var valid []cleanRow
	seen := map[string]bool{}
	for i, raw := range input.Items {
		row := BulkItemInput{
			ItemType:     strings.TrimSpace(raw.ItemType),
			ItemName:     strings.TrimSpace(raw.ItemName),
			SizeOrSource: strings.TrimSpace(raw.SizeOrSource),
			GradeLevel:   strings.TrimSpace(raw.GradeLevel),
			Barcode:      strings.TrimSpace(raw.Barcode),
			Quantity:     raw.Quantity,
			AddedBy:      strings.TrimSpace(raw.AddedBy),
		}
		if row.AddedBy == "" {
			row.AddedBy = "Unknown User"
		}
		switch {
		case row.ItemType == "" || row.ItemName == "" || row.Barcode == "":
			result.FailedRows = append(result.FailedRows, FailedRow{
				Index: i, Reason: "Missing required fields (itemType, itemName, barcode).",
			})
		case row.Quantity < 0:
			result.FailedRows = append(result.FailedRows, FailedRow{
				Index: i, Reason: "Quantity cannot be negative.",
			})
		case seen[row.Barcode]:
			result.FailedRows = append(result.FailedRows, FailedRow{
				Index: i, Reason: "Duplicate barcode in file: " + row.Barcode,
			})
		default:
			seen[row.Barcode] = true
			valid = append(valid, cleanRow{index: i, item: row})
		}
	}
	if len(valid) == 0 {
		return result, &domain.ValidationError{Msg: "no valid items to import after validation"}
	}

	// Duplicados contra el catálogo existente.
	barcodes := make([]string, len(valid))
	for i, row := range valid {
		barcodes[i] = row.item.Barcode
	}
	existing, err := uc.itemRepo.ExistingBarcodes(barcodes)
	if err != nil {
		return nil, err
	}
	var toInsert []cleanRow
	for _, row := range valid {
		if existing[row.item.Barcode] {
			result.FailedRows = append(result.FailedRows, FailedRow{
				Index: row.index, Reason: "Barcode already exists in system: " + row.item.Barcode,
			})
			continue
		}
		toInsert = append(toInsert, row)
	}
	if len(toInsert) == 0 {
		return result, &domain.ValidationError{Msg: "all rows failed validation / duplicate checks"}
	}

	// Inserción atómica de las filas válidas.
	now := time.Now()
	var inserted []*entity.InventoryItem
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.DeliveryRepository,
		_ repository.CheckoutRepository,
		_ repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error {
		for _, row := range toInsert {
			seq, err := seqRepo.Next(repository.SeqInventory)
			if err != nil {
				return err
			}
			item := &entity.InventoryItem{
				ItemID:       ledger.FormatItemID(seq),
				ItemType:     row.item.ItemType,
				ItemName:     row.item.ItemName,
				SizeOrSource: row.item.SizeOrSource,
				GradeLevel:   row.item.GradeLevel,
				Barcode:      row.item.Barcode,
				Quantity:     row.item.Quantity,
				AddedBy:      row.item.AddedBy,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := itemRepo.Create(item); err != nil {
				return err
			}
			inserted = append(inserted, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Count = len(inserted)

	// Entrega sintética best-effort, fuera de la transacción principal.
	if input.CreateInitialDelivery && input.DeliveryNumber != "" && len(inserted) > 0 {
		if deliveryID, err := uc.createInitialDelivery(input.DeliveryNumber, inserted, now); err != nil {
			uc.log.Warn().Err(err).Msg("entrega inicial desde importación masiva falló; la importación sigue en pie")
		} else {
			result.CreatedDeliveryID = deliveryID
		}
	}
	return result, nil
}

// createInitialDelivery crea el registro-resumen del lote. Solo documenta la
// entrada: las cantidades iniciales ya quedaron escritas con cada ítem, así
// que aquí no se ajusta stock.
func (uc *UseCase) createInitialDelivery(deliveryNumber string, inserted []*entity.InventoryItem, now time.Time) (string, error) {
	seq, err := uc.seqRepo.Next(repository.SeqDelivery)
	if err != nil {
		return "", err
	}
	items := make([]entity.DeliveryItem, len(inserted))
	for i, it := range inserted {
		items[i] = entity.DeliveryItem{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			ItemType:     it.ItemType,
			SizeOrSource: it.SizeOrSource,
			GradeLevel:   it.GradeLevel,
			Barcode:      it.Barcode,
			Quantity:     it.Quantity,
		}
	}
	delivery := &entity.Delivery{
		DeliveryID:     ledger.FormatDeliveryID(seq),
		DeliveryNumber: strings.TrimSpace(deliveryNumber),
		Supplier:       "Initial Inventory Import",
		ReceivedBy:     inserted[0].AddedBy,
		DateReceived:   now,
		Items:          items,
		CreatedAt:      now,
	}
	if err := uc.deliveryRepo.Create(delivery); err != nil {
		return "", err
	}
	return delivery.DeliveryID, nil
}
