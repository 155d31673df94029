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

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las entregas son append-only: solo Create y lecturas.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste la entrega y sus líneas desnormalizadas.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	if delivery.ID == "" {
		delivery.ID = uuid.New().String()
	}
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, delivery_id, delivery_number, supplier, received_by, date_received, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		delivery.ID, delivery.DeliveryID, delivery.DeliveryNumber, delivery.Supplier,
		delivery.ReceivedBy, delivery.DateReceived, delivery.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	for i := range delivery.Items {
		it := &delivery.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO delivery_items (id, delivery_id, item_id, item_name, item_type, size_or_source, grade_level, barcode, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New().String(), delivery.ID, it.ItemID, it.ItemName, it.ItemType,
			it.SizeOrSource, it.GradeLevel, it.Barcode, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert delivery item: %w", err)
		}
	}
	return nil
}

const deliveryColumns = `id, delivery_id, delivery_number, supplier, received_by, date_received, created_at`

// GetByDeliveryID obtiene una entrega con sus líneas. Devuelve nil, nil si no existe.
func (r *DeliveryRepo) GetByDeliveryID(deliveryID string) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(),
		`SELECT `+deliveryColumns+` FROM deliveries WHERE delivery_id = $1`, deliveryID,
	).Scan(&d.ID, &d.DeliveryID, &d.DeliveryNumber, &d.Supplier, &d.ReceivedBy, &d.DateReceived, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if err := r.loadItems([]*entity.Delivery{&d}); err != nil {
		return nil, err
	}
	return &d, nil
}

// List devuelve todas las entregas, más recientes primero.
func (r *DeliveryRepo) List() ([]*entity.Delivery, error) {
	return r.list(`SELECT `+deliveryColumns+` FROM deliveries ORDER BY created_at DESC`, nil)
}

// ListRange filtra por date_received dentro de [from, to].
func (r *DeliveryRepo) ListRange(from, to *time.Time) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE 1=1`
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND date_received >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date_received <= $%d", pos)
		args = append(args, *to)
	}
	query += " ORDER BY date_received DESC"
	return r.list(query, args)
}

// Recent devuelve las n entregas más recientes.
func (r *DeliveryRepo) Recent(n int) ([]*entity.Delivery, error) {
	return r.list(`SELECT `+deliveryColumns+` FROM deliveries ORDER BY created_at DESC LIMIT $1`, []any{n})
}

func (r *DeliveryRepo) list(query string, args []any) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.DeliveryID, &d.DeliveryNumber, &d.Supplier,
			&d.ReceivedBy, &d.DateReceived, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de un conjunto de entregas en una sola consulta.
func (r *DeliveryRepo) loadItems(deliveries []*entity.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}
	ids := make([]string, len(deliveries))
	byID := make(map[string]*entity.Delivery, len(deliveries))
	for i, d := range deliveries {
		ids[i] = d.ID
		byID[d.ID] = d
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT delivery_id, item_id, item_name, item_type, size_or_source, grade_level, barcode, quantity
		FROM delivery_items WHERE delivery_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var parentID string
		var it entity.DeliveryItem
		if err := rows.Scan(&parentID, &it.ItemID, &it.ItemName, &it.ItemType,
			&it.SizeOrSource, &it.GradeLevel, &it.Barcode, &it.Quantity); err != nil {
			return fmt.Errorf("scan delivery item: %w", err)
		}
		if d := byID[parentID]; d != nil {
			d.Items = append(d.Items, it)
		}
	}
	return rows.Err()
}
