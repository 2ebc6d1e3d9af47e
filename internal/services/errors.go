package services

import "errors"

var (
	ErrMissingFields         = errors.New("missing required booking fields")
	ErrAccommodationRequired = errors.New("accommodation type is required for this retreat")
	ErrInvalidSelection      = errors.New("invalid retreat or accommodation selection")
	ErrSoldOut               = errors.New("retreat is sold out")
	ErrPaymentProvider       = errors.New("payment provider error")
	ErrPaymentNotCompleted   = errors.New("payment not completed")
	ErrIncompleteMetadata    = errors.New("checkout metadata is incomplete")
)
