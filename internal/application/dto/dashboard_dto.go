package dto

import "time"

// DashboardResponse respuesta de GET /api/dashboard.
// Reúne los conteos globales, alertas de stock bajo, distribución por tipo,
// los ítems más entregados y la actividad reciente.
type DashboardResponse struct {
	Counts           DashboardCountsDTO  `json:"counts"`
	LowStock         []LowStockItemDTO   `json:"lowStock"`
	TypeDistribution []TypeCountDTO      `json:"typeDistribution"`
	TopCheckedOut    []TopCheckedOutDTO  `json:"topCheckedOut"`
	RecentActivity   []RecentActivityDTO `json:"recentActivity"`
}

// DashboardCountsDTO conteos globales.
type DashboardCountsDTO struct {
	TotalItems      int `json:"totalItems"`
	TotalDeliveries int `json:"totalDeliveries"`
	TotalCheckouts  int `json:"totalCheckouts"`
	TotalUsers      int `json:"totalUsers"`
}

// LowStockItemDTO ítem bajo el umbral de stock.
type LowStockItemDTO struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// TypeCountDTO distribución del catálogo por tipo.
type TypeCountDTO struct {
	ItemType string `json:"itemType"`
	Count    int    `json:"count"`
}

// TopCheckedOutDTO ítem más entregado, agregado por nombre.
type TopCheckedOutDTO struct {
	ItemName        string `json:"itemName"`
	TotalCheckedOut int    `json:"totalCheckedOut"`
}

// RecentActivityDTO movimiento reciente (entrega o salida) para el feed.
type RecentActivityDTO struct {
	Kind      string    `json:"kind"` // "delivery" | "checkout"
	Reference string    `json:"reference"`
	By        string    `json:"by"`
	ItemCount int       `json:"itemCount"`
	Date      time.Time `json:"date"`
}
