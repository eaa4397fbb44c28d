// Package token implements the fee-bearing Prism ledger: native balance
// transfers with a refraction-fee skim pooled for periodic redistribution,
// plus capability-gated mint and burn.
package token

import "errors"

var (
	// ErrInsufficientBalance is returned when a transfer or burn exceeds the
	// sender's balance.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrZeroAddress is returned when minting to the zero address.
	ErrZeroAddress = errors.New("token: mint to the zero address")

	// ErrZeroAccount is returned when toggling exemption for the zero address.
	ErrZeroAccount = errors.New("token: exemption for the zero account")

	// ErrInvalidParameter is returned for an out-of-range refraction fee
	// percent (zero, or above params.MaxRefractionFeePercent).
	ErrInvalidParameter = errors.New("token: invalid refraction fee percent")

	// ErrInvalidAmount is returned for nil or negative amounts.
	ErrInvalidAmount = errors.New("token: amount must be non-negative")
)
