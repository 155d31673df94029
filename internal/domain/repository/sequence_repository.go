package repository

// SequenceRepository genera números estrictamente crecientes por contador,
// empezando en 1, sin duplicados bajo llamadas concurrentes. Implementado como
// increment-and-fetch atómico contra un registro compartido, nunca como
// leer-luego-incrementar en la aplicación. Si el almacén de contadores falla,
// la operación que lo invoca debe abortar (jamás reutilizar un número).
type SequenceRepository interface {
	Next(name string) (int64, error)
}

// Nombres de contador usados por la aplicación.
const (
	SeqInventory   = "inventory"   // ITEM-%06d
	SeqDelivery    = "delivery"    // DEL-%06d
	SeqCheckout    = "checkout"    // CH-%06d
	SeqTransaction = "transaction" // TXN-YYYYMMDD-%06d
	SeqReturn      = "return"      // R-YYYYMMDD-%06d
	SeqUser        = "user"        // USR-%04d
)
