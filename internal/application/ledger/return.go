package ledger

import (
	"context"
	"time"

	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// ReturnLineInput línea de devolución.
type ReturnLineInput struct {
	ItemID    string
	ItemName  string
	Quantity  int
	Condition string // Good | Damaged; vacío = Good
	Remarks   string
}

// ReturnInput entrada para registrar una devolución contra un checkout previo.
type ReturnInput struct {
	ReceiptRef string
	ReturnedBy string
	Reason     string
	Items      []ReturnLineInput
}

// AddReturn registra una devolución acotada por el checkout original:
//  1. Busca el checkout por receiptRef.
//  2. Suma lo ya devuelto contra ese recibo (lectura fresca en la misma tx).
//  3. Por línea: el ítem debe ser parte del checkout, y lo acumulado más lo
//     solicitado no puede superar lo entregado (OverReturn).
//  4. Repone stock y copia talla/grado desde la línea del checkout, no del
//     catálogo vivo: la devolución refleja lo que realmente se entregó.
//  5. Genera el returnNumber y persiste el registro.
//
// Todo en una transacción: cualquier línea inválida aborta la devolución
// completa sin reponer stock parcial.
func (uc *UseCase) AddReturn(ctx context.Context, input ReturnInput) (*entity.Return, error) {
	if input.ReceiptRef == "" || input.ReturnedBy == "" || len(input.Items) == 0 {
		return nil, &domain.ValidationError{Msg: "receipt number, returnedBy, and items are required"}
	}
	for i := range input.Items {
		it := &input.Items[i]
		if it.ItemID == "" || it.Quantity < 1 {
			return nil, &domain.ValidationError{Msg: "each item needs an itemId and a quantity of at least 1"}
		}
		switch it.Condition {
		case "":
			it.Condition = entity.ConditionGood
		case entity.ConditionGood, entity.ConditionDamaged:
		default:
			return nil, &domain.ValidationError{Msg: "condition must be Good or Damaged"}
		}
	}

	now := time.Now()
	var ret *entity.Return

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.DeliveryRepository,
		checkoutRepo repository.CheckoutRepository,
		returnRepo repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error {
		checkout, err := checkoutRepo.GetByReceiptNo(input.ReceiptRef)
		if err != nil {
			return err
		}
		if checkout == nil {
			return &domain.NotFoundError{Resource: "checkout", Ref: input.ReceiptRef}
		}

		alreadyReturned, err := returnRepo.ReturnedQuantities(input.ReceiptRef)
		if err != nil {
			return err
		}

		checkoutLines := make(map[string]*entity.CheckoutItem, len(checkout.Items))
		for i := range checkout.Items {
			checkoutLines[checkout.Items[i].ItemID] = &checkout.Items[i]
		}

		lines := make([]entity.ReturnItem, 0, len(input.Items))
		for _, in := range input.Items {
			line, ok := checkoutLines[in.ItemID]
			if !ok {
				return &domain.NotFoundError{
					Resource: "item",
					Ref:      in.ItemID,
					Detail:   "not found in checkout record",
				}
			}
			newTotal := alreadyReturned[in.ItemID] + in.Quantity
			if newTotal > line.Quantity {
				return &domain.OverReturnError{
					ItemID:         line.ItemID,
					ItemName:       line.ItemName,
					RequestedTotal: newTotal,
					Issued:         line.Quantity,
				}
			}
			// Acumula dentro de la misma devolución: dos líneas con el mismo
			// ítem cuentan juntas contra la cota.
			alreadyReturned[in.ItemID] = newTotal
			if _, err := itemRepo.AdjustQuantity(in.ItemID, in.Quantity); err != nil {
				return err
			}
			lines = append(lines, entity.ReturnItem{
				ItemID:       line.ItemID,
				ItemName:     line.ItemName,
				SizeOrSource: line.SizeOrSource,
				GradeLevel:   line.GradeLevel,
				Quantity:     in.Quantity,
				Condition:    in.Condition,
				Remarks:      in.Remarks,
			})
		}

		seq, err := seqRepo.Next(repository.SeqReturn)
		if err != nil {
			return err
		}
		ret = &entity.Return{
			ReturnNumber: FormatReturnNumber(now, seq),
			ReceiptRef:   input.ReceiptRef,
			ReturnedBy:   input.ReturnedBy,
			Reason:       input.Reason,
			Items:        lines,
			DateReturned: now,
			CreatedAt:    now,
		}
		return returnRepo.Create(ret)
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
