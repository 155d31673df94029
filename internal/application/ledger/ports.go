package ledger

import (
	"context"

	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del ledger: el
// registro de movimiento y todos los ajustes de stock confirman juntos o
// ninguno queda aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		deliveryRepo repository.DeliveryRepository,
		checkoutRepo repository.CheckoutRepository,
		returnRepo repository.ReturnRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
