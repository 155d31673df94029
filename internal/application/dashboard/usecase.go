// Package dashboard arma el resumen operativo: conteos, stock bajo,
// distribución por tipo, ítems más entregados y actividad reciente.
package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

const (
	lowStockThreshold = 5
	lowStockLimit     = 10
	topCheckedOutN    = 5
	recentPerKind     = 3
)

// UseCase caso de uso del dashboard.
type UseCase struct {
	reportRepo   repository.ReportRepository
	deliveryRepo repository.DeliveryRepository
	checkoutRepo repository.CheckoutRepository
}

// NewUseCase construye el caso de uso del dashboard.
func NewUseCase(
	reportRepo repository.ReportRepository,
	deliveryRepo repository.DeliveryRepository,
	checkoutRepo repository.CheckoutRepository,
) *UseCase {
	return &UseCase{
		reportRepo:   reportRepo,
		deliveryRepo: deliveryRepo,
		checkoutRepo: checkoutRepo,
	}
}

// Summary reúne todos los widgets del dashboard. Las consultas son
// independientes entre sí y se ejecutan en paralelo.
func (uc *UseCase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	type countsResult struct {
		counts *repository.DashboardCounts
		err    error
	}
	type lowStockResult struct {
		items []repository.LowStockItem
		err   error
	}
	type typesResult struct {
		types []repository.TypeCount
		err   error
	}
	type topResult struct {
		top []repository.TopCheckedOutItem
		err error
	}
	type recentResult struct {
		deliveries []*entity.Delivery
		checkouts  []*entity.Checkout
		err        error
	}

	countsCh := make(chan countsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	typesCh := make(chan typesResult, 1)
	topCh := make(chan topResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		c, err := uc.reportRepo.Counts(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		items, err := uc.reportRepo.LowStockItems(ctx, lowStockThreshold, lowStockLimit)
		lowCh <- lowStockResult{items, err}
	}()
	go func() {
		types, err := uc.reportRepo.TypeDistribution(ctx)
		typesCh <- typesResult{types, err}
	}()
	go func() {
		top, err := uc.reportRepo.TopCheckedOut(ctx, topCheckedOutN)
		topCh <- topResult{top, err}
	}()
	go func() {
		deliveries, err := uc.deliveryRepo.Recent(recentPerKind)
		if err != nil {
			recentCh <- recentResult{err: err}
			return
		}
		checkouts, err := uc.checkoutRepo.Recent(recentPerKind)
		recentCh <- recentResult{deliveries: deliveries, checkouts: checkouts, err: err}
	}()

	counts := <-countsCh
	low := <-lowCh
	types := <-typesCh
	top := <-topCh
	recent := <-recentCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: counts: %w", counts.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: low stock: %w", low.err)
	}
	if types.err != nil {
		return nil, fmt.Errorf("dashboard: type distribution: %w", types.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top checked out: %w", top.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: recent activity: %w", recent.err)
	}

	resp := &dto.DashboardResponse{
		Counts: dto.DashboardCountsDTO{
			TotalItems:      counts.counts.TotalItems,
			TotalDeliveries: counts.counts.TotalDeliveries,
			TotalCheckouts:  counts.counts.TotalCheckouts,
			TotalUsers:      counts.counts.TotalUsers,
		},
		LowStock:         make([]dto.LowStockItemDTO, 0, len(low.items)),
		TypeDistribution: make([]dto.TypeCountDTO, 0, len(types.types)),
		TopCheckedOut:    make([]dto.TopCheckedOutDTO, 0, len(top.top)),
	}
	for _, it := range low.items {
		resp.LowStock = append(resp.LowStock, dto.LowStockItemDTO{
			ItemID: it.ItemID, ItemName: it.ItemName, Quantity: it.Quantity,
		})
	}
	for _, t := range types.types {
		resp.TypeDistribution = append(resp.TypeDistribution, dto.TypeCountDTO{
			ItemType: t.ItemType, Count: t.Count,
		})
	}
	for _, t := range top.top {
		resp.TopCheckedOut = append(resp.TopCheckedOut, dto.TopCheckedOutDTO{
			ItemName: t.ItemName, TotalCheckedOut: t.TotalCheckedOut,
		})
	}
	resp.RecentActivity = mergeRecent(recent.deliveries, recent.checkouts)

	return resp, nil
}

// mergeRecent intercala entregas y salidas recientes en un solo feed
// ordenado del más nuevo al más viejo.
func mergeRecent(deliveries []*entity.Delivery, checkouts []*entity.Checkout) []dto.RecentActivityDTO {
	feed := make([]dto.RecentActivityDTO, 0, len(deliveries)+len(checkouts))
	for _, d := range deliveries {
		feed = append(feed, dto.RecentActivityDTO{
			Kind:      "delivery",
			Reference: d.DeliveryID,
			By:        d.ReceivedBy,
			ItemCount: len(d.Items),
			Date:      d.CreatedAt,
		})
	}
	for _, co := range checkouts {
		feed = append(feed, dto.RecentActivityDTO{
			Kind:      "checkout",
			Reference: co.CheckoutID,
			By:        co.IssuedBy,
			ItemCount: len(co.Items),
			Date:      co.CreatedAt,
		})
	}
	sort.Slice(feed, func(i, j int) bool { return feed[i].Date.After(feed[j].Date) })
	return feed
}
