package ledger

import (
	"context"
	"time"

	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// DeliveryInput entrada para registrar una entrega (stock-in).
type DeliveryInput struct {
	DeliveryNumber string
	Supplier       string // opcional
	ReceivedBy     string
	Items          []LineInput
}

// AddDelivery registra una entrega: genera el deliveryId, suma stock por cada
// línea y persiste el registro con snapshot de atributos, todo en una
// transacción. Cada ítem debe existir en el catálogo por itemId; si alguno
// falta la operación completa aborta sin aplicar ningún ajuste.
func (uc *UseCase) AddDelivery(ctx context.Context, input DeliveryInput) (*entity.Delivery, error) {
	if input.DeliveryNumber == "" || input.ReceivedBy == "" || len(input.Items) == 0 {
		return nil, &domain.ValidationError{Msg: "delivery number, receivedBy, and items are required"}
	}
	for _, it := range input.Items {
		if it.ItemID == "" || it.Quantity < 1 {
			return nil, &domain.ValidationError{Msg: "each item needs an itemId and a quantity of at least 1"}
		}
	}

	now := time.Now()
	var delivery *entity.Delivery

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		deliveryRepo repository.DeliveryRepository,
		_ repository.CheckoutRepository,
		_ repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error {
		seq, err := seqRepo.Next(repository.SeqDelivery)
		if err != nil {
			return err
		}
		lines := make([]entity.DeliveryItem, 0, len(input.Items))
		for _, in := range input.Items {
			cat, err := itemRepo.AdjustQuantity(in.ItemID, in.Quantity)
			if err != nil {
				return err
			}
			lines = append(lines, entity.DeliveryItem{
				ItemID:       cat.ItemID,
				ItemName:     firstNonEmpty(in.ItemName, cat.ItemName),
				ItemType:     firstNonEmpty(in.ItemType, cat.ItemType),
				SizeOrSource: firstNonEmpty(in.SizeOrSource, cat.SizeOrSource),
				GradeLevel:   firstNonEmpty(in.GradeLevel, cat.GradeLevel),
				Barcode:      firstNonEmpty(in.Barcode, cat.Barcode),
				Quantity:     in.Quantity,
			})
		}
		delivery = &entity.Delivery{
			DeliveryID:     FormatDeliveryID(seq),
			DeliveryNumber: input.DeliveryNumber,
			Supplier:       input.Supplier,
			ReceivedBy:     input.ReceivedBy,
			DateReceived:   now,
			Items:          lines,
			CreatedAt:      now,
		}
		return deliveryRepo.Create(delivery)
	})
	if err != nil {
		return nil, err
	}
	return delivery, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
