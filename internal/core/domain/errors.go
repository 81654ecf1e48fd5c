package domain

import "errors"

// Error kinds. Every concrete domain error unwraps to exactly one of these, so
// transport code only needs to map the kind to a status code.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("invalid input")
	ErrUpstream     = errors.New("upstream failure")
)

// Error is a domain error carrying a client-safe message and its kind.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// Kind returns the sentinel kind of e.
func (e *Error) Kind() error { return e.kind }

// Identity
var (
	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid credentials")
	ErrTokenExpired       = newError(ErrUnauthorized, "token expired")
	ErrTokenInvalid       = newError(ErrUnauthorized, "invalid token")
	ErrDuplicateEmail     = newError(ErrConflict, "email already registered")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	// ErrCallerGone is a valid token whose user no longer exists.
	ErrCallerGone  = newError(ErrUnauthorized, "user not found")
	ErrInvalidRole = newError(ErrValidation, "invalid role")
)

// Jobs and bids
var (
	ErrJobNotFound       = newError(ErrNotFound, "job not found")
	ErrBidNotFound       = newError(ErrNotFound, "bid not found")
	ErrJobNotOpen        = newError(ErrConflict, "job is not open for bidding")
	ErrDuplicateBid      = newError(ErrConflict, "you have already placed a bid on this job")
	ErrInvalidCategory   = newError(ErrValidation, "invalid job category")
	ErrInvalidJobStatus  = newError(ErrValidation, "invalid job status")
	ErrInvalidBudget     = newError(ErrValidation, "budget_min must not exceed budget_max")
	ErrSeekerOnly        = newError(ErrForbidden, "only service seekers can create jobs")
	ErrProviderOnly      = newError(ErrForbidden, "only service providers can place bids")
	ErrNotJobCreator     = newError(ErrForbidden, "only job creator can select bids")
	ErrJobNotSelectable  = newError(ErrConflict, "job no longer accepts bid selection")
	ErrInvalidBidAmount  = newError(ErrValidation, "bid amount must be positive")
	ErrInvalidPagination = newError(ErrValidation, "limit and skip must not be negative")
)

// Payments
var (
	ErrPaymentNotFound       = newError(ErrNotFound, "payment not found")
	ErrNotPaymentCreator     = newError(ErrForbidden, "only job creator can make payments")
	ErrNotPayer              = newError(ErrForbidden, "only payer can release payments")
	ErrNotInEscrow           = newError(ErrConflict, "payment not in escrow")
	ErrInvalidTransition     = newError(ErrConflict, "invalid status transition")
	ErrOperationInProgress   = newError(ErrConflict, "another operation on this payment is in progress")
	ErrPaymentNotConfirmed   = newError(ErrConflict, "payment not confirmed")
	ErrPaymentCreationFailed = newError(ErrUpstream, "payment creation failed")
	ErrGatewayUnavailable    = newError(ErrUpstream, "payment gateway unavailable")
	ErrInvalidPaymentMethod  = newError(ErrValidation, "invalid payment method")
	ErrInvalidAmount         = newError(ErrValidation, "amount must be positive")
)

// Messaging and ratings
var (
	ErrEmptyMessage = newError(ErrValidation, "message content is required")
	ErrSelfMessage  = newError(ErrValidation, "cannot send a message to yourself")
	ErrMessageLong  = newError(ErrValidation, "message content is too long")
	ErrAlreadyRated = newError(ErrConflict, "rating already exists")
	ErrInvalidScore = newError(ErrValidation, "rating must be between 1 and 5")
	ErrSelfRating   = newError(ErrValidation, "cannot rate yourself")
)
