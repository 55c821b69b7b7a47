package domain

import "errors"

var (
	ErrCoupleNotFound       = errors.New("couple not found")
	ErrGiftNotFound         = errors.New("gift not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrInvalidTarget        = errors.New("invalid target")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyContribution    = errors.New("contribution needs a quantity or an amount")
	ErrNotMoneyFundable     = errors.New("gift does not accept monetary contributions")
	ErrGiftNameRequired     = errors.New("gift name required")
	ErrSlugRequired         = errors.New("slug required")
	ErrCoupleNamesRequired  = errors.New("bride and groom names required")
	ErrSlugAlreadyExists    = errors.New("slug already exists")
	ErrGiftHasContributions = errors.New("gift has confirmed contributions")
	ErrLedgerInconsistency  = errors.New("ledger inconsistency")
	ErrInvalidID            = errors.New("invalid id")
)
