package ledger

import (
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
)

// UseCase aplica las operaciones del ledger de stock (entrega, salida,
// devolución) de forma transaccional: cada operación corre completa dentro de
// una transacción que cubre validaciones, ajustes de stock y el registro de
// movimiento. Las lecturas de listado usan repos atados al pool.
type UseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	checkoutRepo repository.CheckoutRepository
	returnRepo   repository.ReturnRepository
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	checkoutRepo repository.CheckoutRepository,
	returnRepo repository.ReturnRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		checkoutRepo: checkoutRepo,
		returnRepo:   returnRepo,
	}
}

// LineInput línea de entrada común a entregas y salidas. Los atributos
// desnormalizados son opcionales en entregas (se completan desde el catálogo).
type LineInput struct {
	ItemID       string
	ItemName     string
	ItemType     string
	SizeOrSource string
	GradeLevel   string
	Barcode      string
	Quantity     int
}

// ListDeliveries devuelve todas las entregas, más recientes primero.
func (uc *UseCase) ListDeliveries() ([]*entity.Delivery, error) {
	return uc.deliveryRepo.List()
}

// GetDelivery busca una entrega por deliveryId.
func (uc *UseCase) GetDelivery(deliveryID string) (*entity.Delivery, error) {
	d, err := uc.deliveryRepo.GetByDeliveryID(deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, &domain.NotFoundError{Resource: "delivery", Ref: deliveryID}
	}
	return d, nil
}

// ListCheckouts devuelve todos los checkouts, más recientes primero.
func (uc *UseCase) ListCheckouts() ([]*entity.Checkout, error) {
	return uc.checkoutRepo.List()
}

// GetCheckout busca por receiptNo, checkoutId o transactionNo.
func (uc *UseCase) GetCheckout(ref string) (*entity.Checkout, error) {
	c, err := uc.checkoutRepo.GetByRef(ref)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "checkout", Ref: ref}
	}
	return c, nil
}

// ListReturns devuelve todas las devoluciones, más recientes primero.
func (uc *UseCase) ListReturns() ([]*entity.Return, error) {
	return uc.returnRepo.List()
}

// GetReturn busca una devolución por returnNumber.
func (uc *UseCase) GetReturn(returnNumber string) (*entity.Return, error) {
	ret, err := uc.returnRepo.GetByReturnNumber(returnNumber)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, &domain.NotFoundError{Resource: "return", Ref: returnNumber}
	}
	return ret, nil
}
