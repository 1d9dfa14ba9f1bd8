// Package common defines the sentinel errors shared across the store,
// token services and handlers. Callers match them with errors.Is.
package common

import "errors"

var (
	// store-level errors
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("name already taken")

	// session token errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// transfer protocol errors
	ErrInvalidVoucher  = errors.New("invalid transfer voucher")
	ErrVoucherConsumed = errors.New("transfer voucher already redeemed")
	ErrItemNotFound    = errors.New("item does not exist")
	ErrNotOwner        = errors.New("it is not your item")
	ErrWrongRecipient  = errors.New("invalid receiver")

	ErrInternal = errors.New("internal error")
)
