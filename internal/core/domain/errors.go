package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// A ValidationError reports one rejected shipping-estimation input.
// It is always returned before any quote is computed.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// An IncompleteSelectionError reports a checkout attempt that is missing a
// required choice: the value for one of the product's option categories, or,
// with an empty Category, the shipping quote itself.
type IncompleteSelectionError struct {
	Category string
}

func (e IncompleteSelectionError) Error() string {
	if e.Category == "" {
		return "no shipping quote chosen"
	}
	return fmt.Sprintf("no value chosen for option category %q", e.Category)
}
