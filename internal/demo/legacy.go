package demo

import "reflect"

// LegacyInvoice is an older invoice shape kept for migration. It still
// claims the sales.Invoice logical name, offers two parents and carries a
// convention method for a field that was removed.
type LegacyInvoice struct {
	_ struct{} `meta:"logicalType=sales.Invoice"`

	Number   string
	Customer *Customer `meta:"parent"`
	Account  *Customer `meta:"parent"`
}

// HideDiscount governed a Discount field that no longer exists.
func (*LegacyInvoice) HideDiscount() bool { return true }

// LegacyTypes returns types that make the build report findings.
func LegacyTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[LegacyInvoice]()}
}
