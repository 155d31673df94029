package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uips-online/edutrack-api/internal/application/ledger"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

func TestAddCheckout_DescuentaStockYGuardaSnapshot(t *testing.T) {
	h := newHarness(testItem("ITEM-000001", "PE Shirt", 10))

	co, err := h.uc.AddCheckout(context.Background(), ledger.CheckoutInput{
		ReceiptNo: "OR-2001",
		IssuedBy:  "Ana Cruz",
		Items:     []ledger.LineInput{{ItemID: "ITEM-000001", Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, "CH-000001", co.CheckoutID)
	datePrefix := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("TXN-%s-000001", datePrefix), co.TransactionNo)
	assert.Equal(t, 6, h.items.quantity("ITEM-000001"),
		"la salida debe descontar stock")

	require.Len(t, co.Items, 1)
	assert.Equal(t, "PE Shirt", co.Items[0].ItemName)
	assert.Equal(t, "M", co.Items[0].SizeOrSource)
	assert.Equal(t, 4, co.Items[0].Quantity)
}

func TestAddCheckout_AtributosVaciosQuedanConGuion(t *testing.T) {
	item := testItem("ITEM-000002", "Science Book", 5)
	item.SizeOrSource = ""
	item.GradeLevel = ""
	h := newHarness(item)

	co, err := h.uc.AddCheckout(context.Background(), ledger.CheckoutInput{
		ReceiptNo: "OR-2002",
		IssuedBy:  "Ana Cruz",
		Items:     []ledger.LineInput{{ItemID: "ITEM-000002", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "-", co.Items[0].SizeOrSource)
	assert.Equal(t, "-", co.Items[0].GradeLevel)
}

func TestAddCheckout_StockInsuficiente_AbortaTodo(t *testing.T) {
	h := newHarness(
		testItem("ITEM-000001", "PE Shirt", 10),
		testItem("ITEM-000002", "Science Book", 2),
	)

	_, err := h.uc.AddCheckout(context.Background(), ledger.CheckoutInput{
		ReceiptNo: "OR-2003",
		IssuedBy:  "Ana Cruz",
		Items: []ledger.LineInput{
			{ItemID: "ITEM-000001", Quantity: 5},
			{ItemID: "ITEM-000002", Quantity: 3}, // solo hay 2
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Science Book", stockErr.ItemName)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	// Todo-o-nada: la primera línea tampoco queda aplicada
	assert.Equal(t, 10, h.items.quantity("ITEM-000001"))
	assert.Equal(t, 2, h.items.quantity("ITEM-000002"))
	checkouts, _ := h.checkouts.List()
	assert.Empty(t, checkouts)
}

func TestAddCheckout_StockExacto_LlegaACero(t *testing.T) {
	h := newHarness(testItem("ITEM-000001", "PE Shirt", 3))

	_, err := h.uc.AddCheckout(context.Background(), ledger.CheckoutInput{
		ReceiptNo: "OR-2004",
		IssuedBy:  "Ana Cruz",
		Items:     []ledger.LineInput{{ItemID: "ITEM-000001", Quantity: 3}},
	})
	require.NoError(t, err, "sacar exactamente el stock disponible es válido")
	assert.Equal(t, 0, h.items.quantity("ITEM-000001"))
}

func TestAddCheckout_ItemInexistente(t *testing.T) {
	h := newHarness()

	_, err := h.uc.AddCheckout(context.Background(), ledger.CheckoutInput{
		ReceiptNo: "OR-2005",
		IssuedBy:  "Ana Cruz",
		Items:     []ledger.LineInput{{ItemID: "ITEM-404", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAddCheckout_TransactionNoEsAcumuladoGlobal(t *testing.T) {
	h := newHarness(testItem("ITEM-000001", "PE Shirt", 100))

	var last *entity.Checkout
	for i := 0; i < 3; i++ {
		co, err := h.uc.AddCheckout(context.Background(), ledger.CheckoutInput{
			ReceiptNo: fmt.Sprintf("OR-30%02d", i),
			IssuedBy:  "Ana Cruz",
			Items:     []ledger.LineInput{{ItemID: "ITEM-000001", Quantity: 1}},
		})
		require.NoError(t, err)
		last = co
	}
	// El sufijo crece globalmente, nunca se reinicia
	datePrefix := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("TXN-%s-000003", datePrefix), last.TransactionNo)
	assert.Equal(t, "CH-000003", last.CheckoutID)
}

func TestGetCheckout_BuscaPorCualquierReferencia(t *testing.T) {
	h := newHarness(testItem("ITEM-000001", "PE Shirt", 10))

	created, err := h.uc.AddCheckout(context.Background(), ledger.CheckoutInput{
		ReceiptNo: "OR-2006",
		IssuedBy:  "Ana Cruz",
		Items:     []ledger.LineInput{{ItemID: "ITEM-000001", Quantity: 1}},
	})
	require.NoError(t, err)

	for _, ref := range []string{created.ReceiptNo, created.CheckoutID, created.TransactionNo} {
		got, err := h.uc.GetCheckout(ref)
		require.NoError(t, err, "ref %s", ref)
		assert.Equal(t, created.CheckoutID, got.CheckoutID)
	}

	_, err = h.uc.GetCheckout("no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
