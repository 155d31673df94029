package repository

import (
	"context"
	"time"
)

// MovementTotals cantidades agregadas por itemId dentro de un rango.
type MovementTotals map[string]int

// TypeCount distribución de ítems del catálogo por tipo.
type TypeCount struct {
	ItemType string
	Count    int
}

// TopCheckedOutItem ítem más entregado, agregado por nombre.
type TopCheckedOutItem struct {
	ItemName        string
	TotalCheckedOut int
}

// DashboardCounts conteos globales para el resumen del dashboard.
type DashboardCounts struct {
	TotalItems      int
	TotalDeliveries int
	TotalCheckouts  int
	TotalUsers      int
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
// Fuera de la frontera transaccional del ledger: puede observar un catálogo
// ligeramente desfasado respecto a transacciones en vuelo, lo cual es aceptable.
type ReportRepository interface {
	// Agregados por ítem dentro de [from, to]; from nil = desde el inicio.
	DeliveredTotals(ctx context.Context, from *time.Time, to time.Time) (MovementTotals, error)
	CheckedOutTotals(ctx context.Context, from *time.Time, to time.Time) (MovementTotals, error)
	ReturnedTotals(ctx context.Context, from *time.Time, to time.Time) (MovementTotals, error)

	// Dashboard.
	Counts(ctx context.Context) (*DashboardCounts, error)
	LowStockItems(ctx context.Context, threshold, limit int) ([]LowStockItem, error)
	TypeDistribution(ctx context.Context) ([]TypeCount, error)
	TopCheckedOut(ctx context.Context, limit int) ([]TopCheckedOutItem, error)
}

// LowStockItem ítem bajo el umbral de stock.
type LowStockItem struct {
	ItemID   string
	ItemName string
	Quantity int
}
