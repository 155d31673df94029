package ledger

import (
	"context"
	"time"

	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// CheckoutInput entrada para registrar una salida de stock.
type CheckoutInput struct {
	ReceiptNo string
	IssuedBy  string
	Items     []LineInput
}

// AddCheckout registra una salida: por cada línea verifica que el ítem exista
// y tenga stock suficiente, descuenta la cantidad y copia los atributos
// actuales del catálogo en la línea guardada. Genera checkoutId secuencial y
// transactionNo con prefijo de fecha (contador independiente, acumulado
// global). Todo corre en una transacción: si cualquier línea falla, los
// descuentos ya aplicados a líneas anteriores se revierten con el rollback.
func (uc *UseCase) AddCheckout(ctx context.Context, input CheckoutInput) (*entity.Checkout, error) {
	if input.ReceiptNo == "" || input.IssuedBy == "" || len(input.Items) == 0 {
		return nil, &domain.ValidationError{Msg: "receipt number, issuedBy, and items are required"}
	}
	for _, it := range input.Items {
		if it.ItemID == "" || it.Quantity < 1 {
			return nil, &domain.ValidationError{Msg: "each item needs an itemId and a quantity of at least 1"}
		}
	}

	now := time.Now()
	var checkout *entity.Checkout

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.DeliveryRepository,
		checkoutRepo repository.CheckoutRepository,
		_ repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error {
		checkoutSeq, err := seqRepo.Next(repository.SeqCheckout)
		if err != nil {
			return err
		}
		txnSeq, err := seqRepo.Next(repository.SeqTransaction)
		if err != nil {
			return err
		}

		lines := make([]entity.CheckoutItem, 0, len(input.Items))
		for _, in := range input.Items {
			// AdjustQuantity bloquea la fila y devuelve el ítem con los
			// atributos vigentes; la cantidad negativa queda descartada por
			// InsufficientStockError y aborta toda la operación.
			cat, err := itemRepo.AdjustQuantity(in.ItemID, -in.Quantity)
			if err != nil {
				return err
			}
			lines = append(lines, entity.CheckoutItem{
				ItemID:       cat.ItemID,
				ItemName:     cat.ItemName,
				ItemType:     defaultDash(cat.ItemType),
				SizeOrSource: defaultDash(cat.SizeOrSource),
				GradeLevel:   defaultDash(cat.GradeLevel),
				Barcode:      defaultDash(cat.Barcode),
				Quantity:     in.Quantity,
			})
		}

		checkout = &entity.Checkout{
			CheckoutID:    FormatCheckoutID(checkoutSeq),
			TransactionNo: FormatTransactionNo(now, txnSeq),
			ReceiptNo:     input.ReceiptNo,
			IssuedBy:      input.IssuedBy,
			Items:         lines,
			CreatedAt:     now,
		}
		return checkoutRepo.Create(checkout)
	})
	if err != nil {
		return nil, err
	}
	return checkout, nil
}

func defaultDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
