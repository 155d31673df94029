package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las devoluciones son append-only: solo Create y lecturas.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste la devolución y sus líneas.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO returns (id, return_number, receipt_ref, returned_by, reason, date_returned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ret.ID, ret.ReturnNumber, ret.ReceiptRef, ret.ReturnedBy, ret.Reason,
		ret.DateReturned, ret.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	for i := range ret.Items {
		it := &ret.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO return_items (id, return_id, item_id, item_name, size_or_source, grade_level, quantity, condition, remarks)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New().String(), ret.ID, it.ItemID, it.ItemName, it.SizeOrSource,
			it.GradeLevel, it.Quantity, it.Condition, it.Remarks,
		)
		if err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

const returnColumns = `id, return_number, receipt_ref, returned_by, reason, date_returned, created_at`

// GetByReturnNumber obtiene una devolución. Devuelve nil, nil si no existe.
func (r *ReturnRepo) GetByReturnNumber(returnNumber string) (*entity.Return, error) {
	var ret entity.Return
	err := r.q.QueryRow(context.Background(),
		`SELECT `+returnColumns+` FROM returns WHERE return_number = $1`, returnNumber,
	).Scan(&ret.ID, &ret.ReturnNumber, &ret.ReceiptRef, &ret.ReturnedBy, &ret.Reason,
		&ret.DateReturned, &ret.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	if err := r.loadItems([]*entity.Return{&ret}); err != nil {
		return nil, err
	}
	return &ret, nil
}

// List devuelve todas las devoluciones, más recientes primero.
func (r *ReturnRepo) List() ([]*entity.Return, error) {
	return r.list(`SELECT `+returnColumns+` FROM returns ORDER BY created_at DESC`, nil)
}

// ListRange filtra por date_returned dentro de [from, to].
func (r *ReturnRepo) ListRange(from, to *time.Time) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE 1=1`
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND date_returned >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date_returned <= $%d", pos)
		args = append(args, *to)
	}
	query += " ORDER BY date_returned DESC"
	return r.list(query, args)
}

// ReturnedQuantities suma por itemId lo ya devuelto contra un recibo.
// Dentro de la transacción de una devolución nueva lee el estado confirmado
// más reciente, así la cota devuelto ≤ entregado no se valida contra datos viejos.
func (r *ReturnRepo) ReturnedQuantities(receiptRef string) (map[string]int, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT ri.item_id, COALESCE(SUM(ri.quantity), 0)
		FROM return_items ri
		JOIN returns rt ON rt.id = ri.return_id
		WHERE rt.receipt_ref = $1
		GROUP BY ri.item_id`, receiptRef)
	if err != nil {
		return nil, fmt.Errorf("returned quantities: %w", err)
	}
	defer rows.Close()
	totals := map[string]int{}
	for rows.Next() {
		var itemID string
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("scan returned quantity: %w", err)
		}
		totals[itemID] = qty
	}
	return totals, rows.Err()
}

func (r *ReturnRepo) list(query string, args []any) ([]*entity.Return, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.ReturnNumber, &ret.ReceiptRef, &ret.ReturnedBy,
			&ret.Reason, &ret.DateReturned, &ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ReturnRepo) loadItems(returns []*entity.Return) error {
	if len(returns) == 0 {
		return nil
	}
	ids := make([]string, len(returns))
	byID := make(map[string]*entity.Return, len(returns))
	for i, ret := range returns {
		ids[i] = ret.ID
		byID[ret.ID] = ret
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT return_id, item_id, item_name, size_or_source, grade_level, quantity, condition, remarks
		FROM return_items WHERE return_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var parentID string
		var it entity.ReturnItem
		if err := rows.Scan(&parentID, &it.ItemID, &it.ItemName, &it.SizeOrSource,
			&it.GradeLevel, &it.Quantity, &it.Condition, &it.Remarks); err != nil {
			return fmt.Errorf("scan return item: %w", err)
		}
		if ret := byID[parentID]; ret != nil {
			ret.Items = append(ret.Items, it)
		}
	}
	return rows.Err()
}
