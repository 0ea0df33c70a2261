package checkout

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
	ErrMissingEmail  = errors.New("customer email is required")
	ErrMissingOrigin = errors.New("origin url is required")
	ErrInvalidItem   = errors.New("checkout item has invalid quantity or price")
)
