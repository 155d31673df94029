package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uips-online/edutrack-api/internal/application/dashboard"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// ───────────────────────── fakes ─────────────────────────

type stubReport struct {
	counts     *repository.DashboardCounts
	lowStock   []repository.LowStockItem
	types      []repository.TypeCount
	top        []repository.TopCheckedOutItem
	countsErr  error
	gotThresh  int
	gotLimit   int
	gotTopN    int
}

func (s *stubReport) DeliveredTotals(context.Context, *time.Time, time.Time) (repository.MovementTotals, error) {
	return nil, nil
}

func (s *stubReport) CheckedOutTotals(context.Context, *time.Time, time.Time) (repository.MovementTotals, error) {
	return nil, nil
}

func (s *stubReport) ReturnedTotals(context.Context, *time.Time, time.Time) (repository.MovementTotals, error) {
	return nil, nil
}

func (s *stubReport) Counts(context.Context) (*repository.DashboardCounts, error) {
	return s.counts, s.countsErr
}

func (s *stubReport) LowStockItems(_ context.Context, threshold, limit int) ([]repository.LowStockItem, error) {
	s.gotThresh, s.gotLimit = threshold, limit
	return s.lowStock, nil
}

func (s *stubReport) TypeDistribution(context.Context) ([]repository.TypeCount, error) {
	return s.types, nil
}

func (s *stubReport) TopCheckedOut(_ context.Context, limit int) ([]repository.TopCheckedOutItem, error) {
	s.gotTopN = limit
	return s.top, nil
}

type stubDeliveries struct {
	recent []*entity.Delivery
}

func (s *stubDeliveries) Create(*entity.Delivery) error                          { return nil }
func (s *stubDeliveries) GetByDeliveryID(string) (*entity.Delivery, error)       { return nil, nil }
func (s *stubDeliveries) List() ([]*entity.Delivery, error)                      { return nil, nil }
func (s *stubDeliveries) ListRange(_, _ *time.Time) ([]*entity.Delivery, error)  { return nil, nil }
func (s *stubDeliveries) Recent(int) ([]*entity.Delivery, error)                 { return s.recent, nil }

type stubCheckouts struct {
	recent []*entity.Checkout
}

func (s *stubCheckouts) Create(*entity.Checkout) error                          { return nil }
func (s *stubCheckouts) GetByReceiptNo(string) (*entity.Checkout, error)        { return nil, nil }
func (s *stubCheckouts) GetByRef(string) (*entity.Checkout, error)              { return nil, nil }
func (s *stubCheckouts) List() ([]*entity.Checkout, error)                      { return nil, nil }
func (s *stubCheckouts) ListRange(_, _ *time.Time) ([]*entity.Checkout, error)  { return nil, nil }
func (s *stubCheckouts) Recent(int) ([]*entity.Checkout, error)                 { return s.recent, nil }

// ───────────────────────── tests ─────────────────────────

func TestSummary_ArmaTodosLosWidgets(t *testing.T) {
	rep := &stubReport{
		counts:   &repository.DashboardCounts{TotalItems: 42, TotalDeliveries: 7, TotalCheckouts: 9, TotalUsers: 3},
		lowStock: []repository.LowStockItem{{ItemID: "ITEM-000001", ItemName: "PE Shirt", Quantity: 2}},
		types:    []repository.TypeCount{{ItemType: "Uniform", Count: 30}, {ItemType: "Book", Count: 12}},
		top:      []repository.TopCheckedOutItem{{ItemName: "PE Shirt", TotalCheckedOut: 55}},
	}
	now := time.Now()
	deliveries := &stubDeliveries{recent: []*entity.Delivery{{
		DeliveryID: "DEL-000007", ReceivedBy: "Ana Cruz",
		Items:     []entity.DeliveryItem{{ItemID: "ITEM-000001"}},
		CreatedAt: now.Add(-2 * time.Hour),
	}}}
	checkouts := &stubCheckouts{recent: []*entity.Checkout{{
		CheckoutID: "CH-000009", IssuedBy: "Ana Cruz",
		Items:     []entity.CheckoutItem{{ItemID: "ITEM-000001"}, {ItemID: "ITEM-000002"}},
		CreatedAt: now.Add(-1 * time.Hour),
	}}}

	uc := dashboard.NewUseCase(rep, deliveries, checkouts)
	resp, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 42, resp.Counts.TotalItems)
	assert.Equal(t, 3, resp.Counts.TotalUsers)
	require.Len(t, resp.LowStock, 1)
	assert.Equal(t, "PE Shirt", resp.LowStock[0].ItemName)
	assert.Len(t, resp.TypeDistribution, 2)
	require.Len(t, resp.TopCheckedOut, 1)
	assert.Equal(t, 55, resp.TopCheckedOut[0].TotalCheckedOut)
}

func TestSummary_FeedRecienteOrdenadoDelMasNuevoAlMasViejo(t *testing.T) {
	now := time.Now()
	deliveries := &stubDeliveries{recent: []*entity.Delivery{
		{DeliveryID: "DEL-000001", CreatedAt: now.Add(-3 * time.Hour)},
		{DeliveryID: "DEL-000002", CreatedAt: now.Add(-30 * time.Minute)},
	}}
	checkouts := &stubCheckouts{recent: []*entity.Checkout{
		{CheckoutID: "CH-000001", CreatedAt: now.Add(-1 * time.Hour)},
	}}
	rep := &stubReport{counts: &repository.DashboardCounts{}}

	uc := dashboard.NewUseCase(rep, deliveries, checkouts)
	resp, err := uc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.RecentActivity, 3)
	assert.Equal(t, "DEL-000002", resp.RecentActivity[0].Reference)
	assert.Equal(t, "delivery", resp.RecentActivity[0].Kind)
	assert.Equal(t, "CH-000001", resp.RecentActivity[1].Reference)
	assert.Equal(t, "checkout", resp.RecentActivity[1].Kind)
	assert.Equal(t, "DEL-000001", resp.RecentActivity[2].Reference)
}

func TestSummary_PropagaErrores(t *testing.T) {
	rep := &stubReport{countsErr: errors.New("connection reset")}
	uc := dashboard.NewUseCase(rep, &stubDeliveries{}, &stubCheckouts{})

	_, err := uc.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counts")
}

func TestSummary_UsaLimitesConfigurados(t *testing.T) {
	rep := &stubReport{counts: &repository.DashboardCounts{}}
	uc := dashboard.NewUseCase(rep, &stubDeliveries{}, &stubCheckouts{})

	_, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, rep.gotThresh)
	assert.Equal(t, 10, rep.gotLimit)
	assert.Equal(t, 5, rep.gotTopN)
}
