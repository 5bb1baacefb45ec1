// Package demo is a small invoicing domain used by the CLI and by
// integration tests. It exercises markers, naming conventions, navigable
// parents, supertypes and mutual references.
package demo

import (
	"errors"
	"reflect"
	"time"

	"github.com/leapstack-labs/leapmeta/pkg/introspect"
)

// Audited is embedded by entities that track who created them.
type Audited struct {
	CreatedBy string
	CreatedAt time.Time `meta:"optional"`
}

// Address is a postal address value.
type Address struct {
	_ struct{} `meta:"nature=value,immutable=Addresses are replaced not edited"`

	Street  string
	City    string
	Country string `meta:"maxLength=2"`
}

// Customer buys things and receives invoices.
type Customer struct {
	_ struct{} `meta:"nature=entity,describedAs=A party that is invoiced"`
	Audited

	Name     string `meta:"maxLength=80"`
	Email    string `meta:"named=E-mail"`
	Billing  Address
	Invoices []*Invoice `meta:"paged=10"`
}

// Invoice is a bill sent to a customer.
type Invoice struct {
	_ struct{} `meta:"named=Sales Invoice,logicalType=sales.Invoice,nature=entity"`
	Audited

	Number   string        `meta:"maxLength=20,order=1"`
	Customer *Customer     `meta:"parent,order=2"`
	Status   string        `meta:"order=3"`
	Currency string        `meta:"choices=EUR|USD|GBP,default=EUR,maxLength=3"`
	IssuedOn time.Time     `meta:"optional"`
	Notes    *string       `meta:"describedAs=Free text printed on the invoice"`
	Lines    []InvoiceLine `meta:"paged=50"`
}

// Invoice statuses.
const (
	StatusDraft    = "draft"
	StatusApproved = "approved"
	StatusPaid     = "paid"
)

// MethodMarkers implements introspect.MethodMarkers.
func (*Invoice) MethodMarkers() map[string]string {
	return map[string]string{
		"Approve": "named=Approve Invoice,semantics=idempotent,params=note,arg0.named=Approval Note",
		"Total":   "semantics=safe",
	}
}

// ChoicesStatus lists the statuses an invoice may take.
func (*Invoice) ChoicesStatus() []string {
	return []string{StatusDraft, StatusApproved, StatusPaid}
}

// DefaultStatus is the status of a new invoice.
func (*Invoice) DefaultStatus() string { return StatusDraft }

// ValidateNumber rejects empty invoice numbers.
func (*Invoice) ValidateNumber(number string) string {
	if number == "" {
		return "Number is required"
	}
	return ""
}

// HideNotes hides the notes once the invoice has been paid.
func (i *Invoice) HideNotes() bool { return i.Status == StatusPaid }

// Approve moves a draft invoice to approved.
func (i *Invoice) Approve(note string) error {
	if i.Status != StatusDraft {
		return errors.New("only draft invoices can be approved")
	}
	i.Status = StatusApproved
	if note != "" {
		i.Notes = &note
	}
	return nil
}

// DisableApprove explains why Approve is not available.
func (i *Invoice) DisableApprove() string {
	if i.Status != StatusDraft {
		return "Already approved"
	}
	return ""
}

// Choices0Approve offers canned approval notes.
func (*Invoice) Choices0Approve() []string {
	return []string{"Checked", "Checked with customer"}
}

// Default0Approve is the default approval note.
func (*Invoice) Default0Approve() string { return "Checked" }

// Total sums the invoice lines.
func (i *Invoice) Total() float64 {
	var sum float64
	for _, l := range i.Lines {
		sum += l.Amount()
	}
	return sum
}

// InvoiceLine is one billed item. It navigates back to its invoice.
type InvoiceLine struct {
	_ struct{} `meta:"nature=entity"`

	Invoice     *Invoice `meta:"parent"`
	Description string   `meta:"maxLength=200"`
	Quantity    int
	UnitPrice   float64
}

// Amount is quantity times unit price.
func (l InvoiceLine) Amount() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// ValidateQuantity rejects non-positive quantities.
func (InvoiceLine) ValidateQuantity(q int) error {
	if q <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

// Approvable is implemented by documents that go through approval.
type Approvable interface {
	Approve(note string) error
}

// InvoiceService issues and finds invoices. It is a service by its name.
type InvoiceService struct {
	invoices []*Invoice
}

// MethodMarkers implements introspect.MethodMarkers.
func (*InvoiceService) MethodMarkers() map[string]string {
	return map[string]string{
		"FindInvoice": "params=number",
		"Issue":       "params=customer|number,arg1.maxLength=20",
	}
}

// FindInvoice returns the invoice with the given number.
func (s *InvoiceService) FindInvoice(number string) *Invoice {
	for _, inv := range s.invoices {
		if inv.Number == number {
			return inv
		}
	}
	return nil
}

// ListOverdue returns approved invoices issued more than 30 days ago.
func (s *InvoiceService) ListOverdue() []*Invoice {
	var out []*Invoice
	cutoff := time.Now().AddDate(0, 0, -30)
	for _, inv := range s.invoices {
		if inv.Status == StatusApproved && inv.IssuedOn.Before(cutoff) {
			out = append(out, inv)
		}
	}
	return out
}

// Issue creates a draft invoice for a customer.
func (s *InvoiceService) Issue(customer *Customer, number string) (*Invoice, error) {
	if customer == nil {
		return nil, errors.New("customer is required")
	}
	inv := &Invoice{
		Number:   number,
		Customer: customer,
		Status:   StatusDraft,
		Currency: "EUR",
		IssuedOn: time.Now(),
	}
	s.invoices = append(s.invoices, inv)
	customer.Invoices = append(customer.Invoices, inv)
	return inv, nil
}

// Types returns the root types of the demo build unit.
func Types() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[Audited](),
		reflect.TypeFor[Approvable](),
		reflect.TypeFor[Invoice](),
		reflect.TypeFor[InvoiceService](),
	}
}

// Provider returns a reflection provider that knows the demo capabilities.
func Provider() *introspect.ReflectProvider {
	return introspect.NewReflectProvider(
		introspect.WithCapabilities(reflect.TypeFor[Approvable]()),
	)
}
