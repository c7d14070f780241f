package apperrors

import "errors"

// Entity lookup errors. Absence of rows is a normal branch, signalled
// with these and mapped to a 404 envelope by the handlers. Ownership
// mismatch on plain CRUD paths is deliberately reported as not-found.
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrNoItems         = errors.New("items not found")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrNoAuctions      = errors.New("auctions not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrNoBids          = errors.New("bids not found")
	ErrUserNotFound    = errors.New("user not found")
)

// Business rule errors.
var (
	ErrForbidden     = errors.New("access forbidden")
	ErrAuctionClosed = errors.New("auction is closed")
	ErrBidTooLow     = errors.New("bid price too low")
	ErrOwnAuction    = errors.New("cannot bid on own auction")
)

// Registration conflicts.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)
