package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel errors so callers can branch on the specific rule that failed.
var (
	ErrNameRequired      = errors.New("item name is required")
	ErrUnitRequired      = errors.New("item unit is required")
	ErrQuantityTooSmall  = errors.New("quantity must be at least 1")
	ErrNegativeUnitPrice = errors.New("unit price must not be negative")
	ErrQuotationPaid     = errors.New("a quotation cannot be marked as paid")
	ErrTaxOutOfRange     = errors.New("tax percentage must be between 0 and 100")
	ErrClientRequired    = errors.New("a client is required")
	ErrInvalidPhone      = errors.New("phone number must be 11 to 12 characters of digits and dashes")
	ErrInvalidNTN        = errors.New("ntn number must be 7 to 13 characters long")
)

// ValidationError wraps a sentinel error with details about the offending
// value. It is always produced before any store call is made.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// ValidateItem checks the domain constraints on a single line item.
func ValidateItem(it LineItem) error {
	if strings.TrimSpace(it.Name) == "" {
		return &ValidationError{Err: ErrNameRequired}
	}
	if strings.TrimSpace(it.Unit) == "" {
		return &ValidationError{Err: ErrUnitRequired, Details: it.Name}
	}
	if it.Quantity.LessThan(one) {
		return &ValidationError{Err: ErrQuantityTooSmall, Details: it.Name}
	}
	if it.UnitPrice.IsNegative() {
		return &ValidationError{Err: ErrNegativeUnitPrice, Details: it.Name}
	}
	return nil
}

// ValidateItems checks every item and reports the first violation with
// its position.
func ValidateItems(items []LineItem) error {
	for i, it := range items {
		if err := ValidateItem(it); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateTransaction checks header-level constraints: a quotation may
// never be paid, and the tax percentage must be a sane percentage.
func ValidateTransaction(t Transaction) error {
	if t.ClientID == 0 {
		return &ValidationError{Err: ErrClientRequired}
	}
	if t.IsQuotation && t.IsPaid {
		return &ValidationError{Err: ErrQuotationPaid, Details: t.ReferenceNumber}
	}
	if t.TaxPercentage.IsNegative() || t.TaxPercentage.GreaterThan(hundred) {
		return &ValidationError{Err: ErrTaxOutOfRange, Details: t.TaxPercentage.String()}
	}
	return nil
}

// ValidatePhone accepts numbers like 0123-4567890: digits and dashes,
// 11 to 12 characters. Empty is allowed, the field is optional.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	digits := strings.ReplaceAll(phone, "-", "")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return &ValidationError{Err: ErrInvalidPhone, Details: phone}
		}
	}
	if len(phone) < 11 || len(phone) > 12 {
		return &ValidationError{Err: ErrInvalidPhone, Details: phone}
	}
	return nil
}

// ValidateNTN accepts tax registration numbers of 7 to 13 characters,
// e.g. 01234-5678901. Empty is allowed.
func ValidateNTN(ntn string) error {
	if ntn == "" {
		return nil
	}
	if len(ntn) < 7 || len(ntn) > 13 {
		return &ValidationError{Err: ErrInvalidNTN, Details: ntn}
	}
	return nil
}

// ValidateClient checks the optional contact fields of a client record.
func ValidateClient(c Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Err: ErrNameRequired}
	}
	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}
	return ValidateNTN(c.NTNNumber)
}

// ValidateOwner checks the owner profile fields.
func ValidateOwner(o Owner) error {
	if strings.TrimSpace(o.Name) == "" {
		return &ValidationError{Err: ErrNameRequired}
	}
	if err := ValidatePhone(o.Phone); err != nil {
		return err
	}
	if err := ValidatePhone(o.Phone2); err != nil {
		return err
	}
	return ValidateNTN(o.NTNNumber)
}
