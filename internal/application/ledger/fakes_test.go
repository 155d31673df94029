package ledger_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/uips-online/edutrack-api/internal/application/ledger"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// Fakes en memoria para los puertos de persistencia. memTxRunner emula la
// atomicidad de la transacción: toma un snapshot del estado antes de ejecutar
// la función y lo restaura si ésta devuelve error.

type memItems struct {
	items map[string]*entity.InventoryItem
}

func newMemItems(items ...*entity.InventoryItem) *memItems {
	m := &memItems{items: map[string]*entity.InventoryItem{}}
	for _, it := range items {
		cp := *it
		m.items[it.ItemID] = &cp
	}
	return m
}

func (m *memItems) Create(item *entity.InventoryItem) error {
	if _, ok := m.items[item.ItemID]; ok {
		return domain.ErrConflict
	}
	cp := *item
	m.items[item.ItemID] = &cp
	return nil
}

func (m *memItems) GetByID(itemID string) (*entity.InventoryItem, error) {
	it, ok := m.items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memItems) GetByBarcode(barcode string) (*entity.InventoryItem, error) {
	for _, it := range m.items {
		if it.Barcode == barcode {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memItems) ExistingBarcodes(barcodes []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, b := range barcodes {
		if it, _ := m.GetByBarcode(b); it != nil {
			out[b] = true
		}
	}
	return out, nil
}

func (m *memItems) List(f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var list []*entity.InventoryItem
	for _, it := range m.items {
		if f.ItemType != "" && f.ItemType != "All" && it.ItemType != f.ItemType {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(it.ItemName), strings.ToLower(f.Search)) {
			continue
		}
		cp := *it
		list = append(list, &cp)
	}
	return list, len(list), nil
}

func (m *memItems) Update(item *entity.InventoryItem) error {
	stored, ok := m.items[item.ItemID]
	if !ok {
		return &domain.NotFoundError{Resource: "item", Ref: item.ItemID}
	}
	qty := stored.Quantity
	cp := *item
	cp.Quantity = qty
	m.items[item.ItemID] = &cp
	return nil
}

func (m *memItems) Delete(itemID string) error {
	if _, ok := m.items[itemID]; !ok {
		return &domain.NotFoundError{Resource: "item", Ref: itemID}
	}
	delete(m.items, itemID)
	return nil
}

func (m *memItems) AdjustQuantity(itemID string, delta int) (*entity.InventoryItem, error) {
	it, ok := m.items[itemID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "item", Ref: itemID, Detail: "not found in inventory"}
	}
	if it.Quantity+delta < 0 {
		return nil, &domain.InsufficientStockError{
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Available: it.Quantity,
			Requested: -delta,
		}
	}
	prev := *it
	it.Quantity += delta
	it.UpdatedAt = time.Now()
	return &prev, nil
}

func (m *memItems) quantity(itemID string) int {
	if it, ok := m.items[itemID]; ok {
		return it.Quantity
	}
	return -1
}

type memDeliveries struct {
	list []*entity.Delivery
}

func (m *memDeliveries) Create(d *entity.Delivery) error {
	cp := *d
	m.list = append(m.list, &cp)
	return nil
}

func (m *memDeliveries) GetByDeliveryID(deliveryID string) (*entity.Delivery, error) {
	for _, d := range m.list {
		if d.DeliveryID == deliveryID {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memDeliveries) List() ([]*entity.Delivery, error) { return m.list, nil }

func (m *memDeliveries) ListRange(from, to *time.Time) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range m.list {
		if from != nil && d.DateReceived.Before(*from) {
			continue
		}
		if to != nil && d.DateReceived.After(*to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *memDeliveries) Recent(n int) ([]*entity.Delivery, error) {
	if len(m.list) <= n {
		return m.list, nil
	}
	return m.list[len(m.list)-n:], nil
}

type memCheckouts struct {
	list []*entity.Checkout
}

func (m *memCheckouts) Create(co *entity.Checkout) error {
	cp := *co
	m.list = append(m.list, &cp)
	return nil
}

func (m *memCheckouts) GetByReceiptNo(receiptNo string) (*entity.Checkout, error) {
	for _, co := range m.list {
		if co.ReceiptNo == receiptNo {
			return co, nil
		}
	}
	return nil, nil
}

func (m *memCheckouts) GetByRef(ref string) (*entity.Checkout, error) {
	for _, co := range m.list {
		if co.ReceiptNo == ref || co.CheckoutID == ref || co.TransactionNo == ref {
			return co, nil
		}
	}
	return nil, nil
}

func (m *memCheckouts) List() ([]*entity.Checkout, error) { return m.list, nil }

func (m *memCheckouts) ListRange(from, to *time.Time) ([]*entity.Checkout, error) {
	var out []*entity.Checkout
	for _, co := range m.list {
		if from != nil && co.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && co.CreatedAt.After(*to) {
			continue
		}
		out = append(out, co)
	}
	return out, nil
}

func (m *memCheckouts) Recent(n int) ([]*entity.Checkout, error) {
	if len(m.list) <= n {
		return m.list, nil
	}
	return m.list[len(m.list)-n:], nil
}

type memReturns struct {
	list []*entity.Return
}

func (m *memReturns) Create(r *entity.Return) error {
	cp := *r
	m.list = append(m.list, &cp)
	return nil
}

func (m *memReturns) GetByReturnNumber(returnNumber string) (*entity.Return, error) {
	for _, r := range m.list {
		if r.ReturnNumber == returnNumber {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memReturns) List() ([]*entity.Return, error) { return m.list, nil }

func (m *memReturns) ListRange(from, to *time.Time) ([]*entity.Return, error) {
	var out []*entity.Return
	for _, r := range m.list {
		if from != nil && r.DateReturned.Before(*from) {
			continue
		}
		if to != nil && r.DateReturned.After(*to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memReturns) ReturnedQuantities(receiptRef string) (map[string]int, error) {
	out := map[string]int{}
	for _, r := range m.list {
		if r.ReceiptRef != receiptRef {
			continue
		}
		for _, it := range r.Items {
			out[it.ItemID] += it.Quantity
		}
	}
	return out, nil
}

type memSeq struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newMemSeq() *memSeq { return &memSeq{counters: map[string]int64{}} }

func (m *memSeq) Next(name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
	return m.counters[name], nil
}

// memTxRunner pasa los fakes a la función y restaura el estado previo si
// la función falla, imitando el rollback de la transacción real.
type memTxRunner struct {
	items      *memItems
	deliveries *memDeliveries
	checkouts  *memCheckouts
	returns    *memReturns
	seq        *memSeq
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	repository.ItemRepository,
	repository.DeliveryRepository,
	repository.CheckoutRepository,
	repository.ReturnRepository,
	repository.SequenceRepository,
) error) error {
	itemsBackup := map[string]entity.InventoryItem{}
	for id, it := range tx.items.items {
		itemsBackup[id] = *it
	}
	dLen, cLen, rLen := len(tx.deliveries.list), len(tx.checkouts.list), len(tx.returns.list)

	err := fn(tx.items, tx.deliveries, tx.checkouts, tx.returns, tx.seq)
	if err != nil {
		tx.items.items = map[string]*entity.InventoryItem{}
		for id := range itemsBackup {
			cp := itemsBackup[id]
			tx.items.items[id] = &cp
		}
		tx.deliveries.list = tx.deliveries.list[:dLen]
		tx.checkouts.list = tx.checkouts.list[:cLen]
		tx.returns.list = tx.returns.list[:rLen]
	}
	return err
}

// harness arma un caso de uso del ledger sobre los fakes.
type harness struct {
	items      *memItems
	deliveries *memDeliveries
	checkouts  *memCheckouts
	returns    *memReturns
	seq        *memSeq
	uc         *ledger.UseCase
}

func newHarness(items ...*entity.InventoryItem) *harness {
	h := &harness{
		items:      newMemItems(items...),
		deliveries: &memDeliveries{},
		checkouts:  &memCheckouts{},
		returns:    &memReturns{},
		seq:        newMemSeq(),
	}
	tx := &memTxRunner{
		items:      h.items,
		deliveries: h.deliveries,
		checkouts:  h.checkouts,
		returns:    h.returns,
		seq:        h.seq,
	}
	h.uc = ledger.NewUseCase(tx, h.deliveries, h.checkouts, h.returns)
	return h
}

func testItem(id, name string, qty int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ItemID:       id,
		ItemType:     "Uniform",
		ItemName:     name,
		SizeOrSource: "M",
		GradeLevel:   "Grade 7",
		Barcode:      "BC-" + id,
		Quantity:     qty,
		AddedBy:      "Ana Cruz",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}
