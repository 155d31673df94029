package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/application/report"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// ───────────────────────── fakes ─────────────────────────

type stubItems struct {
	items []*entity.InventoryItem
}

func (s *stubItems) Create(*entity.InventoryItem) error                  { return nil }
func (s *stubItems) GetByID(string) (*entity.InventoryItem, error)       { return nil, nil }
func (s *stubItems) GetByBarcode(string) (*entity.InventoryItem, error)  { return nil, nil }
func (s *stubItems) ExistingBarcodes([]string) (map[string]bool, error)  { return nil, nil }
func (s *stubItems) Update(*entity.InventoryItem) error                  { return nil }
func (s *stubItems) Delete(string) error                                 { return nil }
func (s *stubItems) AdjustQuantity(string, int) (*entity.InventoryItem, error) {
	return nil, nil
}

func (s *stubItems) List(repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	return s.items, len(s.items), nil
}

// stubDeliveries guarda el rango recibido para verificar la normalización de fechas.
type stubDeliveries struct {
	deliveries []*entity.Delivery
	gotFrom    *time.Time
	gotTo      *time.Time
}

func (s *stubDeliveries) Create(*entity.Delivery) error                    { return nil }
func (s *stubDeliveries) GetByDeliveryID(string) (*entity.Delivery, error) { return nil, nil }
func (s *stubDeliveries) List() ([]*entity.Delivery, error)                { return s.deliveries, nil }
func (s *stubDeliveries) Recent(int) ([]*entity.Delivery, error)           { return nil, nil }

func (s *stubDeliveries) ListRange(from, to *time.Time) ([]*entity.Delivery, error) {
	s.gotFrom, s.gotTo = from, to
	return s.deliveries, nil
}

type stubCheckouts struct {
	checkouts []*entity.Checkout
}

func (s *stubCheckouts) Create(*entity.Checkout) error                    { return nil }
func (s *stubCheckouts) GetByReceiptNo(string) (*entity.Checkout, error)  { return nil, nil }
func (s *stubCheckouts) GetByRef(string) (*entity.Checkout, error)        { return nil, nil }
func (s *stubCheckouts) List() ([]*entity.Checkout, error)                { return s.checkouts, nil }
func (s *stubCheckouts) Recent(int) ([]*entity.Checkout, error)           { return nil, nil }

func (s *stubCheckouts) ListRange(_, _ *time.Time) ([]*entity.Checkout, error) {
	return s.checkouts, nil
}

type stubReturns struct {
	returns []*entity.Return
}

func (s *stubReturns) Create(*entity.Return) error                        { return nil }
func (s *stubReturns) GetByReturnNumber(string) (*entity.Return, error)   { return nil, nil }
func (s *stubReturns) List() ([]*entity.Return, error)                    { return s.returns, nil }
func (s *stubReturns) ReturnedQuantities(string) (map[string]int, error)  { return nil, nil }

func (s *stubReturns) ListRange(_, _ *time.Time) ([]*entity.Return, error) {
	return s.returns, nil
}

type stubReport struct {
	delivered  repository.MovementTotals
	checkedOut repository.MovementTotals
	returned   repository.MovementTotals
	failWith   error
}

func (s *stubReport) DeliveredTotals(context.Context, *time.Time, time.Time) (repository.MovementTotals, error) {
	return s.delivered, s.failWith
}

func (s *stubReport) CheckedOutTotals(context.Context, *time.Time, time.Time) (repository.MovementTotals, error) {
	return s.checkedOut, nil
}

func (s *stubReport) ReturnedTotals(context.Context, *time.Time, time.Time) (repository.MovementTotals, error) {
	return s.returned, nil
}

func (s *stubReport) Counts(context.Context) (*repository.DashboardCounts, error) { return nil, nil }

func (s *stubReport) LowStockItems(context.Context, int, int) ([]repository.LowStockItem, error) {
	return nil, nil
}

func (s *stubReport) TypeDistribution(context.Context) ([]repository.TypeCount, error) {
	return nil, nil
}

func (s *stubReport) TopCheckedOut(context.Context, int) ([]repository.TopCheckedOutItem, error) {
	return nil, nil
}

type reportFixture struct {
	items      *stubItems
	deliveries *stubDeliveries
	checkouts  *stubCheckouts
	returns    *stubReturns
	report     *stubReport
	uc         *report.UseCase
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		items:      &stubItems{},
		deliveries: &stubDeliveries{},
		checkouts:  &stubCheckouts{},
		returns:    &stubReturns{},
		report:     &stubReport{},
	}
	f.uc = report.NewUseCase(f.items, f.deliveries, f.checkouts, f.returns, f.report)
	return f
}

// deliveryWithLines arma una entrega de n líneas de una unidad cada una.
func deliveryWithLines(deliveryID string, n int) *entity.Delivery {
	items := make([]entity.DeliveryItem, n)
	for i := range items {
		items[i] = entity.DeliveryItem{
			ItemID:   "ITEM-00000" + string(rune('1'+i)),
			ItemName: "PE Shirt",
			ItemType: "Uniform",
			Quantity: 1,
		}
	}
	return &entity.Delivery{
		DeliveryID:   deliveryID,
		Supplier:     "ABC School Supplies",
		ReceivedBy:   "Ana Cruz",
		DateReceived: time.Now(),
		Items:        items,
	}
}

// ───────────────────────── rango de fechas ─────────────────────────

func TestDeliveryReport_FechasInvalidas(t *testing.T) {
	f := newReportFixture()

	_, err := f.uc.DeliveryReport(context.Background(), "2026-99-01", "", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.uc.DeliveryReport(context.Background(), "", "not-a-date", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.uc.DeliveryReport(context.Background(), "2026-06-30", "2026-06-01", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrValidation), "from posterior a to")
}

func TestDeliveryReport_NormalizaFinDeDiaInclusivo(t *testing.T) {
	f := newReportFixture()

	_, err := f.uc.DeliveryReport(context.Background(), "2026-06-01", "2026-06-15", dto.PageRequest{})
	require.NoError(t, err)

	require.NotNil(t, f.deliveries.gotFrom)
	require.NotNil(t, f.deliveries.gotTo)
	assert.Equal(t, "2026-06-01", f.deliveries.gotFrom.Format("2006-01-02"))
	assert.Equal(t, "2026-06-15 23:59:59", f.deliveries.gotTo.Format("2006-01-02 15:04:05"),
		"la fecha 'to' cubre el día completo")
}

func TestDeliveryReport_SinFromAbreElRango(t *testing.T) {
	f := newReportFixture()

	_, err := f.uc.DeliveryReport(context.Background(), "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Nil(t, f.deliveries.gotFrom)
	require.NotNil(t, f.deliveries.gotTo)
}

// ───────────────────────── paginación ─────────────────────────

func TestDeliveryReport_Paginacion(t *testing.T) {
	f := newReportFixture()
	f.deliveries.deliveries = []*entity.Delivery{deliveryWithLines("DEL-000001", 5)}

	resp, err := f.uc.DeliveryReport(context.Background(), "", "", dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, dto.Pagination{Total: 5, Page: 1, Pages: 3, Limit: 2}, resp.Pagination)

	resp, err = f.uc.DeliveryReport(context.Background(), "", "", dto.PageRequest{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1, "la última página lleva el resto")

	resp, err = f.uc.DeliveryReport(context.Background(), "", "", dto.PageRequest{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, resp.Data, "página fuera de rango: datos vacíos, metadatos completos")
	assert.Equal(t, 5, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Pages)
}

func TestDeliveryReport_AllDevuelveTodoComoUnaPagina(t *testing.T) {
	f := newReportFixture()
	f.deliveries.deliveries = []*entity.Delivery{deliveryWithLines("DEL-000001", 5)}

	for _, page := range []dto.PageRequest{
		{All: true},
		{Limit: 0},
	} {
		resp, err := f.uc.DeliveryReport(context.Background(), "", "", page)
		require.NoError(t, err)
		assert.Len(t, resp.Data, 5)
		assert.Equal(t, 1, resp.Pagination.Page)
		assert.Equal(t, 1, resp.Pagination.Pages)
		assert.Equal(t, 5, resp.Pagination.Total)
	}
}

// ───────────────────────── filas aplanadas ─────────────────────────

func TestCheckoutReport_UnaFilaPorLinea(t *testing.T) {
	f := newReportFixture()
	f.checkouts.checkouts = []*entity.Checkout{{
		CheckoutID:    "CH-000001",
		TransactionNo: "TXN-20260615-000001",
		ReceiptNo:     "OR-5001",
		IssuedBy:      "Ana Cruz",
		CreatedAt:     time.Now(),
		Items: []entity.CheckoutItem{
			{ItemID: "ITEM-000001", ItemName: "PE Shirt", Quantity: 2},
			{ItemID: "ITEM-000002", ItemName: "Science Book", Quantity: 1},
		},
	}}

	resp, err := f.uc.CheckoutReport(context.Background(), "", "", dto.PageRequest{All: true})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "OR-5001", resp.Data[0].ReceiptNo)
	assert.Equal(t, "ITEM-000001", resp.Data[0].ItemID)
	assert.Equal(t, "ITEM-000002", resp.Data[1].ItemID)
}

func TestReturnReport_ConservaCondicionYRemarks(t *testing.T) {
	f := newReportFixture()
	f.returns.returns = []*entity.Return{{
		ReturnNumber: "R-20260615-000001",
		ReceiptRef:   "OR-5001",
		ReturnedBy:   "Ana Cruz",
		Reason:       "wrong size",
		DateReturned: time.Now(),
		Items: []entity.ReturnItem{
			{ItemID: "ITEM-000001", ItemName: "PE Shirt", Quantity: 1, Condition: entity.ConditionDamaged, Remarks: "ripped seam"},
		},
	}}

	resp, err := f.uc.ReturnReport(context.Background(), "", "", dto.PageRequest{All: true})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, entity.ConditionDamaged, resp.Data[0].Condition)
	assert.Equal(t, "ripped seam", resp.Data[0].Remarks)
}

// ───────────────────────── resumen ─────────────────────────

func TestSummaryReport_MovimientoNeto(t *testing.T) {
	f := newReportFixture()
	f.report.delivered = repository.MovementTotals{"ITEM-000001": 10, "ITEM-000002": 5}
	f.report.checkedOut = repository.MovementTotals{"ITEM-000001": 4, "ITEM-000003": 2}
	f.report.returned = repository.MovementTotals{"ITEM-000001": 1}
	f.items.items = []*entity.InventoryItem{
		{ItemID: "ITEM-000001", ItemName: "PE Shirt", ItemType: "Uniform", Quantity: 7},
		{ItemID: "ITEM-000002", ItemName: "Science Book", ItemType: "Book", Quantity: 5},
	}

	resp, err := f.uc.SummaryReport(context.Background(), "", "", dto.PageRequest{All: true})
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)

	// Ordenado por itemId
	assert.Equal(t, "ITEM-000001", resp.Data[0].ItemID)
	assert.Equal(t, "ITEM-000002", resp.Data[1].ItemID)
	assert.Equal(t, "ITEM-000003", resp.Data[2].ItemID)

	r1 := resp.Data[0]
	assert.Equal(t, 10, r1.Delivered)
	assert.Equal(t, 4, r1.CheckedOut)
	assert.Equal(t, 1, r1.Returned)
	assert.Equal(t, 7, r1.NetChange, "delivered + returned - checkedOut")
	assert.Equal(t, "PE Shirt", r1.ItemName)
	assert.Equal(t, 7, r1.CurrentStock)

	assert.Equal(t, 5, resp.Data[1].NetChange)
}

func TestSummaryReport_ItemBorradoDelCatalogo(t *testing.T) {
	f := newReportFixture()
	f.report.checkedOut = repository.MovementTotals{"ITEM-000003": 2}
	f.items.items = nil // catálogo vacío: el ítem con movimiento ya fue borrado

	resp, err := f.uc.SummaryReport(context.Background(), "", "", dto.PageRequest{All: true})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	row := resp.Data[0]
	assert.Equal(t, "ITEM-000003", row.ItemID)
	assert.Empty(t, row.ItemName, "sin catálogo no hay campos descriptivos")
	assert.Equal(t, 0, row.CurrentStock)
	assert.Equal(t, -2, row.NetChange)
}

func TestSummaryReport_LecturasRepetidasDanLoMismo(t *testing.T) {
	f := newReportFixture()
	f.report.delivered = repository.MovementTotals{"ITEM-000002": 5, "ITEM-000001": 10}
	f.report.checkedOut = repository.MovementTotals{"ITEM-000001": 4}
	f.report.returned = repository.MovementTotals{"ITEM-000001": 1}
	f.items.items = []*entity.InventoryItem{
		{ItemID: "ITEM-000001", ItemName: "PE Shirt", Quantity: 7},
		{ItemID: "ITEM-000002", ItemName: "Science Book", Quantity: 5},
	}

	first, err := f.uc.SummaryReport(context.Background(), "2026-06-01", "2026-06-30", dto.PageRequest{All: true})
	require.NoError(t, err)
	second, err := f.uc.SummaryReport(context.Background(), "2026-06-01", "2026-06-30", dto.PageRequest{All: true})
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data,
		"mismos datos y mismos argumentos: el reporte es determinista, incluida la iteración de mapas")
	assert.Equal(t, first.Pagination, second.Pagination)
}

func TestSummaryReport_PropagaErroresDeAgregacion(t *testing.T) {
	f := newReportFixture()
	f.report.failWith = errors.New("connection reset")

	_, err := f.uc.SummaryReport(context.Background(), "", "", dto.PageRequest{All: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivered")
}

func TestInventoryReport_SnapshotDelCatalogo(t *testing.T) {
	f := newReportFixture()
	f.items.items = []*entity.InventoryItem{
		{ItemID: "ITEM-000001", ItemName: "PE Shirt", Quantity: 7},
		{ItemID: "ITEM-000002", ItemName: "Science Book", Quantity: 5},
	}

	resp, err := f.uc.InventoryReport(context.Background(), dto.PageRequest{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Pages)
}
