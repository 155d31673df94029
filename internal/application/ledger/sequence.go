package ledger

import (
	"fmt"
	"time"
)

// Formatos de identificador legibles. Los contadores TXN- y R- llevan la fecha
// del día como prefijo pero el sufijo numérico es un total acumulado global:
// no se reinicia a medianoche. Dos documentos de días distintos pueden mostrar
// sufijos no contiguos y eso es el comportamiento esperado; los reportes
// dependen del orden global del sufijo.

// FormatItemID formatea ITEM-000001.
func FormatItemID(seq int64) string { return fmt.Sprintf("ITEM-%06d", seq) }

// FormatDeliveryID formatea DEL-000001.
func FormatDeliveryID(seq int64) string { return fmt.Sprintf("DEL-%06d", seq) }

// FormatCheckoutID formatea CH-000001.
func FormatCheckoutID(seq int64) string { return fmt.Sprintf("CH-%06d", seq) }

// FormatUserID formatea USR-0001.
func FormatUserID(seq int64) string { return fmt.Sprintf("USR-%04d", seq) }

// FormatTransactionNo formatea TXN-YYYYMMDD-000001.
func FormatTransactionNo(date time.Time, seq int64) string {
	return fmt.Sprintf("TXN-%s-%06d", date.Format("20060102"), seq)
}

// FormatReturnNumber formatea R-YYYYMMDD-000001.
func FormatReturnNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("R-%s-%06d", date.Format("20060102"), seq)
}
