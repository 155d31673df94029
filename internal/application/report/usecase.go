// Package report genera los reportes de movimientos: entregas, salidas,
// devoluciones, catálogo y el resumen de movimiento neto por período.
// Los reportes son de solo lectura y re-ejecutarlos sobre el mismo rango
// produce el mismo resultado mientras no entren movimientos nuevos.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// UseCase casos de uso de reportes.
type UseCase struct {
	itemRepo     repository.ItemRepository
	deliveryRepo repository.DeliveryRepository
	checkoutRepo repository.CheckoutRepository
	returnRepo   repository.ReturnRepository
	reportRepo   repository.ReportRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	itemRepo repository.ItemRepository,
	deliveryRepo repository.DeliveryRepository,
	checkoutRepo repository.CheckoutRepository,
	returnRepo repository.ReturnRepository,
	reportRepo repository.ReportRepository,
) *UseCase {
	return &UseCase{
		itemRepo:     itemRepo,
		deliveryRepo: deliveryRepo,
		checkoutRepo: checkoutRepo,
		returnRepo:   returnRepo,
		reportRepo:   reportRepo,
	}
}

// parseRange convierte las fechas del query en el rango [from, to].
// from vacío = desde el inicio (nil); to vacío = hasta ahora. El fin de rango
// se normaliza al final del día para que la fecha sea inclusiva.
func parseRange(fromStr, toStr string) (from *time.Time, to time.Time, err error) {
	now := time.Now()

	if toStr == "" {
		to = now
	} else {
		to, err = time.ParseInLocation("2006-01-02", toStr, now.Location())
		if err != nil {
			return nil, time.Time{}, &domain.ValidationError{Msg: fmt.Sprintf("invalid 'to' date: %s", toStr)}
		}
		to = to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}

	if fromStr != "" {
		f, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
		if err != nil {
			return nil, time.Time{}, &domain.ValidationError{Msg: fmt.Sprintf("invalid 'from' date: %s", fromStr)}
		}
		if f.After(to) {
			return nil, time.Time{}, &domain.ValidationError{Msg: "'from' cannot be after 'to'"}
		}
		from = &f
	}
	return from, to, nil
}

// paginate corta un slice ya ordenado según la página pedida.
// all=true o limit=0 devuelven todo como página 1 de 1.
func paginate[T any](rows []T, p dto.PageRequest) ([]T, dto.Pagination) {
	p.Normalize()
	total := len(rows)
	if p.Unpaged() {
		return rows, dto.Pagination{Total: total, Page: 1, Pages: 1, Limit: total}
	}
	pages := (total + p.Limit - 1) / p.Limit
	if pages == 0 {
		pages = 1
	}
	start := (p.Page - 1) * p.Limit
	if start >= total {
		return []T{}, dto.Pagination{Total: total, Page: p.Page, Pages: pages, Limit: p.Limit}
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return rows[start:end], dto.Pagination{Total: total, Page: p.Page, Pages: pages, Limit: p.Limit}
}

// DeliveryReport entrega un reporte aplanado: una fila por línea de entrega.
func (uc *UseCase) DeliveryReport(ctx context.Context, fromStr, toStr string, page dto.PageRequest) (*dto.ReportResponse[dto.DeliveryReportRow], error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	deliveries, err := uc.deliveryRepo.ListRange(from, &to)
	if err != nil {
		return nil, err
	}
	var rows []dto.DeliveryReportRow
	for _, d := range deliveries {
		for _, it := range d.Items {
			rows = append(rows, dto.DeliveryReportRow{
				DeliveryID:     d.DeliveryID,
				DeliveryNumber: d.DeliveryNumber,
				Supplier:       d.Supplier,
				ReceivedBy:     d.ReceivedBy,
				DateReceived:   d.DateReceived,
				ItemID:         it.ItemID,
				ItemName:       it.ItemName,
				ItemType:       it.ItemType,
				SizeOrSource:   it.SizeOrSource,
				GradeLevel:     it.GradeLevel,
				Quantity:       it.Quantity,
			})
		}
	}
	data, pg := paginate(rows, page)
	return &dto.ReportResponse[dto.DeliveryReportRow]{Data: data, Pagination: pg}, nil
}

// CheckoutReport reporte aplanado de salidas.
func (uc *UseCase) CheckoutReport(ctx context.Context, fromStr, toStr string, page dto.PageRequest) (*dto.ReportResponse[dto.CheckoutReportRow], error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	checkouts, err := uc.checkoutRepo.ListRange(from, &to)
	if err != nil {
		return nil, err
	}
	var rows []dto.CheckoutReportRow
	for _, co := range checkouts {
		for _, it := range co.Items {
			rows = append(rows, dto.CheckoutReportRow{
				CheckoutID:    co.CheckoutID,
				TransactionNo: co.TransactionNo,
				ReceiptNo:     co.ReceiptNo,
				IssuedBy:      co.IssuedBy,
				Date:          co.CreatedAt,
				ItemID:        it.ItemID,
				ItemName:      it.ItemName,
				ItemType:      it.ItemType,
				SizeOrSource:  it.SizeOrSource,
				GradeLevel:    it.GradeLevel,
				Quantity:      it.Quantity,
			})
		}
	}
	data, pg := paginate(rows, page)
	return &dto.ReportResponse[dto.CheckoutReportRow]{Data: data, Pagination: pg}, nil
}

// ReturnReport reporte aplanado de devoluciones.
func (uc *UseCase) ReturnReport(ctx context.Context, fromStr, toStr string, page dto.PageRequest) (*dto.ReportResponse[dto.ReturnReportRow], error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	returns, err := uc.returnRepo.ListRange(from, &to)
	if err != nil {
		return nil, err
	}
	var rows []dto.ReturnReportRow
	for _, r := range returns {
		for _, it := range r.Items {
			rows = append(rows, dto.ReturnReportRow{
				ReturnNumber: r.ReturnNumber,
				ReceiptRef:   r.ReceiptRef,
				ReturnedBy:   r.ReturnedBy,
				Reason:       r.Reason,
				DateReturned: r.DateReturned,
				ItemID:       it.ItemID,
				ItemName:     it.ItemName,
				SizeOrSource: it.SizeOrSource,
				GradeLevel:   it.GradeLevel,
				Quantity:     it.Quantity,
				Condition:    it.Condition,
				Remarks:      it.Remarks,
			})
		}
	}
	data, pg := paginate(rows, page)
	return &dto.ReportResponse[dto.ReturnReportRow]{Data: data, Pagination: pg}, nil
}

// InventoryReport snapshot del catálogo completo, paginado en memoria con la
// misma semántica que el resto de los reportes.
func (uc *UseCase) InventoryReport(ctx context.Context, page dto.PageRequest) (*dto.ReportResponse[dto.ItemResponse], error) {
	items, _, err := uc.itemRepo.List(repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ItemResponse, len(items))
	for i, it := range items {
		rows[i] = dto.NewItemResponse(it)
	}
	data, pg := paginate(rows, page)
	return &dto.ReportResponse[dto.ItemResponse]{Data: data, Pagination: pg}, nil
}

// SummaryReport movimiento neto por ítem dentro del rango:
// netChange = delivered + returned - checkedOut, junto al stock vigente.
// Las tres agregaciones son independientes y se consultan en paralelo.
func (uc *UseCase) SummaryReport(ctx context.Context, fromStr, toStr string, page dto.PageRequest) (*dto.ReportResponse[dto.SummaryReportRow], error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	type totalsResult struct {
		totals repository.MovementTotals
		err    error
	}
	delCh := make(chan totalsResult, 1)
	outCh := make(chan totalsResult, 1)
	retCh := make(chan totalsResult, 1)

	go func() {
		t, err := uc.reportRepo.DeliveredTotals(ctx, from, to)
		delCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.CheckedOutTotals(ctx, from, to)
		outCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.ReturnedTotals(ctx, from, to)
		retCh <- totalsResult{t, err}
	}()

	delivered := <-delCh
	checkedOut := <-outCh
	returned := <-retCh

	if delivered.err != nil {
		return nil, fmt.Errorf("summary: delivered: %w", delivered.err)
	}
	if checkedOut.err != nil {
		return nil, fmt.Errorf("summary: checked out: %w", checkedOut.err)
	}
	if returned.err != nil {
		return nil, fmt.Errorf("summary: returned: %w", returned.err)
	}

	itemIDs := map[string]bool{}
	for id := range delivered.totals {
		itemIDs[id] = true
	}
	for id := range checkedOut.totals {
		itemIDs[id] = true
	}
	for id := range returned.totals {
		itemIDs[id] = true
	}

	// Catálogo vigente para completar atributos y stock actual. Un ítem con
	// movimiento pero ya borrado del catálogo conserva su fila con los campos
	// descriptivos vacíos.
	items, _, err := uc.itemRepo.List(repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]*dto.ItemResponse, len(items))
	for _, it := range items {
		resp := dto.NewItemResponse(it)
		catalog[it.ItemID] = &resp
	}

	rows := make([]dto.SummaryReportRow, 0, len(itemIDs))
	for id := range itemIDs {
		row := dto.SummaryReportRow{
			ItemID:     id,
			Delivered:  delivered.totals[id],
			CheckedOut: checkedOut.totals[id],
			Returned:   returned.totals[id],
		}
		row.NetChange = row.Delivered + row.Returned - row.CheckedOut
		if it, ok := catalog[id]; ok {
			row.ItemName = it.ItemName
			row.ItemType = it.ItemType
			row.SizeOrSource = it.SizeOrSource
			row.GradeLevel = it.GradeLevel
			row.CurrentStock = it.Quantity
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })

	data, pg := paginate(rows, page)
	return &dto.ReportResponse[dto.SummaryReportRow]{Data: data, Pagination: pg}, nil
}
