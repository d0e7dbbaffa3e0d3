package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrInsufficientBalance = errors.New("balance is not enough")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrOrderTotalsMismatch = errors.New("order totals do not add up")
	ErrOrderAlreadyPlaced  = errors.New("order already placed")
	ErrOrderNotPaid        = errors.New("order payment is not confirmed")
	ErrShipmentFinal       = errors.New("shipment line is in a terminal state")
	ErrSaleSoldOut         = errors.New("sale allocation exhausted")
	ErrSaleOverAllocated   = errors.New("sale allocation exceeds inventory")
)
