package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para reportes y dashboard.
// Trabaja directo contra el pool, fuera de las transacciones del ledger.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// DeliveredTotals suma cantidades entregadas por ítem dentro del rango.
func (r *ReportRepo) DeliveredTotals(ctx context.Context, from *time.Time, to time.Time) (repository.MovementTotals, error) {
	return r.totals(ctx, `
		SELECT di.item_id, COALESCE(SUM(di.quantity), 0)
		FROM delivery_items di
		JOIN deliveries d ON d.id = di.delivery_id
		WHERE ($1::timestamptz IS NULL OR d.date_received >= $1)
		  AND d.date_received <= $2
		GROUP BY di.item_id`, from, to)
}

// CheckedOutTotals suma cantidades salidas por ítem dentro del rango.
func (r *ReportRepo) CheckedOutTotals(ctx context.Context, from *time.Time, to time.Time) (repository.MovementTotals, error) {
	return r.totals(ctx, `
		SELECT ci.item_id, COALESCE(SUM(ci.quantity), 0)
		FROM checkout_items ci
		JOIN checkouts c ON c.id = ci.checkout_id
		WHERE ($1::timestamptz IS NULL OR c.created_at >= $1)
		  AND c.created_at <= $2
		GROUP BY ci.item_id`, from, to)
}

// ReturnedTotals suma cantidades devueltas por ítem dentro del rango (por date_returned).
func (r *ReportRepo) ReturnedTotals(ctx context.Context, from *time.Time, to time.Time) (repository.MovementTotals, error) {
	return r.totals(ctx, `
		SELECT ri.item_id, COALESCE(SUM(ri.quantity), 0)
		FROM return_items ri
		JOIN returns rt ON rt.id = ri.return_id
		WHERE ($1::timestamptz IS NULL OR rt.date_returned >= $1)
		  AND rt.date_returned <= $2
		GROUP BY ri.item_id`, from, to)
}

func (r *ReportRepo) totals(ctx context.Context, query string, from *time.Time, to time.Time) (repository.MovementTotals, error) {
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("movement totals: %w", err)
	}
	defer rows.Close()
	totals := repository.MovementTotals{}
	for rows.Next() {
		var itemID string
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("scan movement total: %w", err)
		}
		totals[itemID] = qty
	}
	return totals, rows.Err()
}

// Counts conteos globales para el resumen del dashboard, en una sola consulta.
func (r *ReportRepo) Counts(ctx context.Context) (*repository.DashboardCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM items),
			(SELECT COUNT(*) FROM deliveries),
			(SELECT COUNT(*) FROM checkouts),
			(SELECT COUNT(*) FROM users)`
	var c repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query).Scan(
		&c.TotalItems, &c.TotalDeliveries, &c.TotalCheckouts, &c.TotalUsers)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}

// LowStockItems ítems con stock bajo el umbral.
func (r *ReportRepo) LowStockItems(ctx context.Context, threshold, limit int) ([]repository.LowStockItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT item_id, item_name, quantity
		FROM items WHERE quantity < $1
		ORDER BY quantity ASC LIMIT $2`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// TypeDistribution distribución de ítems por tipo, mayor primero.
func (r *ReportRepo) TypeDistribution(ctx context.Context) ([]repository.TypeCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT item_type, COUNT(*)
		FROM items GROUP BY item_type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("type distribution: %w", err)
	}
	defer rows.Close()
	var list []repository.TypeCount
	for rows.Next() {
		var tc repository.TypeCount
		if err := rows.Scan(&tc.ItemType, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		list = append(list, tc)
	}
	return list, rows.Err()
}

// TopCheckedOut ítems más entregados, agregados por nombre.
func (r *ReportRepo) TopCheckedOut(ctx context.Context, limit int) ([]repository.TopCheckedOutItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ci.item_name, COALESCE(SUM(ci.quantity), 0) AS total
		FROM checkout_items ci
		GROUP BY ci.item_name
		ORDER BY total DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top checked out: %w", err)
	}
	defer rows.Close()
	var list []repository.TopCheckedOutItem
	for rows.Next() {
		var t repository.TopCheckedOutItem
		if err := rows.Scan(&t.ItemName, &t.TotalCheckedOut); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
