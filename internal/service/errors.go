package service

import "errors"

// Expected business failures. The presentation layer translates these into
// user-facing responses; anything else coming out of the service is a
// storage failure and is propagated as-is.
var (
	ErrDuplicateCode     = errors.New("product code already exists")
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
