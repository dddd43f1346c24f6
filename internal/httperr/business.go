package httperr

import "errors"

// Business rule violations travel as string codes so handlers can map
// them to a status without needing a type per rule.
const (
	CodeProductNotFound   = "product_not_found"
	CodeLocationNotFound  = "location_not_found"
	CodeServiceNotFound   = "service_not_found"
	CodeStaffNotFound     = "staff_not_found"
	CodeInsufficientStock = "insufficient_stock"
	CodeInvalidQuantity   = "invalid_quantity"
	CodeSameLocation      = "same_location"
	CodeInvalidState      = "invalid_state"
	CodeAmountMismatch    = "amount_mismatch"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code, or "" when err is not a BusinessError.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
