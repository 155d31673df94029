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

var _ repository.CheckoutRepository = (*CheckoutRepo)(nil)

// CheckoutRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los checkouts son append-only: solo Create y lecturas.
type CheckoutRepo struct {
	q Querier
}

// NewCheckoutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCheckoutRepository(q Querier) *CheckoutRepo {
	return &CheckoutRepo{q: q}
}

// Create persiste el checkout y sus líneas con snapshot de atributos.
func (r *CheckoutRepo) Create(checkout *entity.Checkout) error {
	if checkout.ID == "" {
		checkout.ID = uuid.New().String()
	}
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO checkouts (id, checkout_id, transaction_no, receipt_no, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		checkout.ID, checkout.CheckoutID, checkout.TransactionNo, checkout.ReceiptNo,
		checkout.IssuedBy, checkout.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert checkout: %w", err)
	}
	for i := range checkout.Items {
		it := &checkout.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO checkout_items (id, checkout_id, item_id, item_name, item_type, size_or_source, grade_level, barcode, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New().String(), checkout.ID, it.ItemID, it.ItemName, it.ItemType,
			it.SizeOrSource, it.GradeLevel, it.Barcode, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert checkout item: %w", err)
		}
	}
	return nil
}

const checkoutColumns = `id, checkout_id, transaction_no, receipt_no, issued_by, created_at`

// GetByReceiptNo busca el checkout original de una devolución. Devuelve nil, nil si no existe.
func (r *CheckoutRepo) GetByReceiptNo(receiptNo string) (*entity.Checkout, error) {
	return r.getOne(`SELECT `+checkoutColumns+` FROM checkouts WHERE receipt_no = $1`, receiptNo)
}

// GetByRef busca por receiptNo, checkoutId o transactionNo indistintamente.
func (r *CheckoutRepo) GetByRef(ref string) (*entity.Checkout, error) {
	return r.getOne(`
		SELECT `+checkoutColumns+` FROM checkouts
		WHERE receipt_no = $1 OR checkout_id = $1 OR transaction_no = $1`, ref)
}

func (r *CheckoutRepo) getOne(query, arg string) (*entity.Checkout, error) {
	var c entity.Checkout
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.CheckoutID, &c.TransactionNo, &c.ReceiptNo, &c.IssuedBy, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checkout: %w", err)
	}
	if err := r.loadItems([]*entity.Checkout{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

// List devuelve todos los checkouts, más recientes primero.
func (r *CheckoutRepo) List() ([]*entity.Checkout, error) {
	return r.list(`SELECT `+checkoutColumns+` FROM checkouts ORDER BY created_at DESC`, nil)
}

// ListRange filtra por created_at dentro de [from, to].
func (r *CheckoutRepo) ListRange(from, to *time.Time) ([]*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE 1=1`
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
	}
	query += " ORDER BY created_at DESC"
	return r.list(query, args)
}

// Recent devuelve los n checkouts más recientes.
func (r *CheckoutRepo) Recent(n int) ([]*entity.Checkout, error) {
	return r.list(`SELECT `+checkoutColumns+` FROM checkouts ORDER BY created_at DESC LIMIT $1`, []any{n})
}

func (r *CheckoutRepo) list(query string, args []any) ([]*entity.Checkout, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checkouts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Checkout
	for rows.Next() {
		var c entity.Checkout
		if err := rows.Scan(&c.ID, &c.CheckoutID, &c.TransactionNo, &c.ReceiptNo,
			&c.IssuedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan checkout: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CheckoutRepo) loadItems(checkouts []*entity.Checkout) error {
	if len(checkouts) == 0 {
		return nil
	}
	ids := make([]string, len(checkouts))
	byID := make(map[string]*entity.Checkout, len(checkouts))
	for i, c := range checkouts {
		ids[i] = c.ID
		byID[c.ID] = c
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT checkout_id, item_id, item_name, item_type, size_or_source, grade_level, barcode, quantity
		FROM checkout_items WHERE checkout_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list checkout items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var parentID string
		var it entity.CheckoutItem
		if err := rows.Scan(&parentID, &it.ItemID, &it.ItemName, &it.ItemType,
			&it.SizeOrSource, &it.GradeLevel, &it.Barcode, &it.Quantity); err != nil {
			return fmt.Errorf("scan checkout item: %w", err)
		}
		if c := byID[parentID]; c != nil {
			c.Items = append(c.Items, it)
		}
	}
	return rows.Err()
}
