package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `item_id, item_type, item_name, size_or_source, grade_level, barcode, quantity, added_by, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ItemID, &it.ItemType, &it.ItemName, &it.SizeOrSource,
		&it.GradeLevel, &it.Barcode, &it.Quantity, &it.AddedBy, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo ítem. Barcode duplicado → ErrConflict.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ItemID, item.ItemType, item.ItemName, item.SizeOrSource,
		item.GradeLevel, item.Barcode, item.Quantity, item.AddedBy,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por itemId. Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByID(itemID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByBarcode obtiene un ítem por barcode. Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByBarcode(barcode string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE barcode = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by barcode: %w", err)
	}
	return it, nil
}

// ExistingBarcodes devuelve cuáles de los barcodes dados ya existen en el catálogo.
func (r *ItemRepo) ExistingBarcodes(barcodes []string) (map[string]bool, error) {
	if len(barcodes) == 0 {
		return map[string]bool{}, nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT barcode FROM items WHERE barcode = ANY($1)`, barcodes)
	if err != nil {
		return nil, fmt.Errorf("existing barcodes: %w", err)
	}
	defer rows.Close()
	existing := make(map[string]bool, len(barcodes))
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scan barcode: %w", err)
		}
		existing[b] = true
	}
	return existing, rows.Err()
}

// List lista ítems del catálogo con búsqueda, filtro por tipo y paginación.
// Limit == 0 devuelve todo.
func (r *ItemRepo) List(f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	where := ""
	var args []any
	pos := 1
	if f.ItemType != "" && f.ItemType != "All" {
		where += fmt.Sprintf(" AND item_type = $%d", pos)
		args = append(args, f.ItemType)
		pos++
	}
	if f.Search != "" {
		where += fmt.Sprintf(` AND (item_name ILIKE $%d OR item_type ILIKE $%d OR size_or_source ILIKE $%d OR grade_level ILIKE $%d OR barcode ILIKE $%d)`,
			pos, pos, pos, pos, pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM items WHERE 1=1` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ItemID, &it.ItemType, &it.ItemName, &it.SizeOrSource,
			&it.GradeLevel, &it.Barcode, &it.Quantity, &it.AddedBy, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// Update actualiza atributos administrativos. No toca Quantity: el stock solo
// se mueve vía AdjustQuantity dentro de una operación del ledger.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE items
		SET item_type = $2, item_name = $3, size_or_source = $4, grade_level = $5, barcode = $6, updated_at = now()
		WHERE item_id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ItemID, item.ItemType, item.ItemName, item.SizeOrSource, item.GradeLevel, item.Barcode,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "item", Ref: item.ItemID}
	}
	return nil
}

// Delete elimina un ítem del catálogo. Los registros de movimiento que lo
// referencian conservan su copia desnormalizada y no se tocan.
func (r *ItemRepo) Delete(itemID string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "item", Ref: itemID}
	}
	return nil
}

// AdjustQuantity bloquea la fila (SELECT FOR UPDATE), valida que el resultado
// no quede negativo y escribe la nueva cantidad. Devuelve el ítem leído bajo
// lock con la cantidad previa al ajuste, para snapshots de movimiento.
func (r *ItemRepo) AdjustQuantity(itemID string, delta int) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "item", Ref: itemID, Detail: "not found in inventory"}
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	newQty := it.Quantity + delta
	if newQty < 0 {
		return nil, &domain.InsufficientStockError{
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Available: it.Quantity,
			Requested: -delta,
		}
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = now() WHERE item_id = $1`,
		itemID, newQty,
	)
	if err != nil {
		return nil, fmt.Errorf("adjust item quantity: %w", err)
	}
	return it, nil
}
