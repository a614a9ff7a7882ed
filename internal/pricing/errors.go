package pricing

import (
	"errors"
	"fmt"
)

// Fields named by ValidationError.
const (
	FieldLength      = "length"
	FieldGain        = "gain"
	FieldCableType   = "cable_type"
	FieldCableSeries = "cable_series"
	FieldVariant     = "variant"
	FieldQuantity    = "quantity"
)

// ValidationKind distinguishes an absent selection from an unusable one.
type ValidationKind string

const (
	ValidationKindMissing ValidationKind = "missing"
	ValidationKindInvalid ValidationKind = "invalid"
)

// ValidationError is returned when an add-to-cart or checkout action lacks a
// mandatory selection. Display paths never return it.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func missing(field string) *ValidationError {
	return &ValidationError{Kind: ValidationKindMissing, Field: field}
}

func invalid(field string) *ValidationError {
	return &ValidationError{Kind: ValidationKindInvalid, Field: field}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == ValidationKindInvalid {
		return fmt.Sprintf("%s is invalid", e.Field)
	}
	return fmt.Sprintf("%s not selected", e.Field)
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var typed *ValidationError
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// UnresolvedPriceWarning reports that no connector pricing entry matched.
type UnresolvedPriceWarning struct {
	ProductID     string
	CableTypeSlug string
}

func (w *UnresolvedPriceWarning) Error() string {
	return fmt.Sprintf("no connector price for cable type %q on product %s", w.CableTypeSlug, w.ProductID)
}

// MalformedOptionWarning reports a legacy option skipped during indexing.
type MalformedOptionWarning struct {
	Kind     OptionKind
	Position int
}

func (w *MalformedOptionWarning) Error() string {
	return fmt.Sprintf("malformed %s option at position %d skipped", w.Kind, w.Position)
}
