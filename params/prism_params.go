// Copyright 2024 The gprism Authors
// This file is part of the gprism library.
//
// The gprism library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gprism library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gprism library. If not, see <http://www.gnu.org/licenses/>.

package params

import "github.com/prism-network/gprism/common"

// Prism system addresses — fixed, well-known addresses used by the protocol.
var (
	// SystemActionAddress is the sentinel To-address for system action transactions.
	// Transactions sent to this address carry a JSON-encoded SysAction in tx.Data
	// and are executed outside the VM by the state processor.
	SystemActionAddress = common.HexToAddress("0x0000000000000000000000000000000050525331") // "PRS1"

	// TokenAddress holds the refraction fee pool balance and the fee-bearing
	// ledger state (fee rate, exemptions, supply counters, capability table).
	TokenAddress = common.HexToAddress("0x0000000000000000000000000000000050525332") // "PRS2"

	// BondAddress stores bond records and holds native principal in custody.
	BondAddress = common.HexToAddress("0x0000000000000000000000000000000050525333") // "PRS3"

	// VestingAddress stores vesting cohort state and holds newly minted,
	// not-yet-vested supply.
	VestingAddress = common.HexToAddress("0x0000000000000000000000000000000050525334") // "PRS4"

	// CertificateAddress stores the bond certificate registry (id counter and
	// per-certificate ownership).
	CertificateAddress = common.HexToAddress("0x0000000000000000000000000000000050525335") // "PRS5"
)

// Refraction fee parameters.
var (
	// DefaultRefractionFeePercent is the transfer-fee percentage applied at
	// genesis until changed by the fee admin. Fee = floor(amount * pct / 100).
	DefaultRefractionFeePercent = uint64(5)

	// MaxRefractionFeePercent bounds administrative fee updates.
	MaxRefractionFeePercent = uint64(100)
)

// Vesting-schedule parameters.
const (
	// YearSeconds is the fixed vesting year epoch. Deliberately not
	// calendar-adjusted: one year is always 365 days of 86400 seconds.
	YearSeconds = uint64(31_536_000)

	// MintWaitSeconds is the minimum elapsed time between annual mint events.
	MintWaitSeconds = uint64(365 * 86400)

	// Tranche unlock offsets from cohort start.
	NineMonthSeconds    = uint64(270 * 86400)
	TwelveMonthSeconds  = uint64(360 * 86400)
	FifteenMonthSeconds = uint64(450 * 86400)

	// StartingMintFeeBps is the first-year supply expansion rate in basis
	// points of total supply.
	StartingMintFeeBps = uint64(500)

	// MintFeeDecayStepBps is subtracted from the mint rate after every annual
	// mint event.
	MintFeeDecayStepBps = uint64(50)

	// MintFeeFloorBps is the terminal mint rate; the decay never goes below it.
	MintFeeFloorBps = uint64(100)
)

// Bond parameters.
const (
	// MinMaturityDays and MaxMaturityDays bound the accepted bond terms.
	MinMaturityDays = uint64(7)
	MaxMaturityDays = uint64(365)

	// MaxBondFeeBps bounds the per-bond fee field.
	MaxBondFeeBps = uint64(100)

	// DaySeconds converts a maturity term to its wall-clock deadline.
	DaySeconds = uint64(86400)
)

// SysActionGas is the fixed gas cost charged for any system action transaction,
// on top of the intrinsic gas.
const SysActionGas uint64 = 100_000
