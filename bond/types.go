// Package bond implements the time-locked bond registry: principal deposits
// with a chosen maturity term, 1:1 receipt minting, a tiered yield on
// withdrawal and a tiered refraction index consumed by fee redistribution.
package bond

import (
	"errors"
	"math/big"
)

// NativeAssetKind marks a bond whose principal is the native ledger asset,
// attached as transaction value. Any other kind names an external asset
// handled by a registered AssetProvider.
const NativeAssetKind = "native"

var (
	// ErrInvalidAmount is returned for a zero principal.
	ErrInvalidAmount = errors.New("bond: principal must be positive")

	// ErrInvalidMaturity is returned for a maturity outside [7,365] days.
	ErrInvalidMaturity = errors.New("bond: maturity days out of range")

	// ErrInvalidFee is returned for a bond fee outside [0,100] bps.
	ErrInvalidFee = errors.New("bond: fee bps out of range")

	// ErrValueMismatch is returned when the attached value of a native-asset
	// deposit does not equal the principal.
	ErrValueMismatch = errors.New("bond: attached value must equal principal")

	// ErrAlreadyWithdrawn is returned when withdrawing a terminal bond.
	ErrAlreadyWithdrawn = errors.New("bond: already withdrawn")

	// ErrNotOwner is returned when the caller does not own the certificate.
	ErrNotOwner = errors.New("bond: caller does not own certificate")

	// ErrNotMatured is returned before startTime + maturityDays elapses.
	ErrNotMatured = errors.New("bond: not matured")

	// ErrUnknownCertificate is returned for a certificate id never issued.
	ErrUnknownCertificate = errors.New("bond: unknown certificate")

	// ErrUnknownAssetKind is returned when no provider is registered for an
	// external asset kind.
	ErrUnknownAssetKind = errors.New("bond: no provider for asset kind")

	// ErrReentrantCall is returned when deposit or withdraw re-enters itself.
	ErrReentrantCall = errors.New("bond: reentrant call")
)

// Bond is the in-memory view of one bond record read from the StateDB.
// All fields except Withdrawn are immutable after deposit; Withdrawn
// transitions false to true exactly once.
type Bond struct {
	Withdrawn       bool
	Principal       *big.Int
	StartTime       uint64
	MaturityDays    uint64
	AssetKind       string
	BondFeeBps      uint64
	RefractionIndex RefractionIndex
}

// MaturesAt returns the first wall-clock second at which withdrawal succeeds.
func (b *Bond) MaturesAt() uint64 {
	return b.StartTime + b.MaturityDays*86400
}
