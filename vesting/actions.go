package vesting

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/log"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/perm"
	"github.com/prism-network/gprism/token"
)

// MintAndVest fires the annual supply-expansion event.
//
// mintAmount = floor(totalSupply * currentMintFeeBps / 10000), minted into
// the params.VestingAddress pooled account where it stays unspendable until
// tranches release. The cohort for the current year is created (or
// overwritten) with all release flags clear, and the mint rate decays by one
// step, never below the floor.
func MintAndVest(db vm.StateDB, cfg *params.ChainConfig, caller common.Address, now uint64) error {
	if err := perm.Require(db, cfg, perm.RoleMinter, caller); err != nil {
		return err
	}

	lastYear := LastYearIndex(db)
	if now < cfg.YearStart(lastYear)+params.MintWaitSeconds {
		return ErrWaitingTimeNotCompleted
	}
	yearIndex := cfg.YearIndex(now)

	bps := CurrentMintFeeBps(db)
	supply, _ := uint256.FromBig(token.TotalSupply(db))
	mintAmount := new(uint256.Int).Mul(supply, uint256.NewInt(bps))
	mintAmount.Div(mintAmount, uint256.NewInt(10_000))

	if err := token.Mint(db, cfg, params.VestingAddress, params.VestingAddress, mintAmount.ToBig()); err != nil {
		return err
	}
	writeCohort(db, yearIndex, &Cohort{TotalAmount: mintAmount.ToBig()})

	// Decay towards the floor, never below it.
	if bps > params.MintFeeFloorBps {
		next := bps - params.MintFeeDecayStepBps
		if next < params.MintFeeFloorBps {
			next = params.MintFeeFloorBps
		}
		setMintFeeBps(db, next)
	} else {
		setMintFeeBps(db, bps)
	}

	// The tracked year only advances here on first use; afterwards it moves
	// through the claim path.
	if lastYear == 0 {
		setLastYearIndex(db, yearIndex)
	}

	emitMintAndVest(db, yearIndex, mintAmount.ToBig(), bps)
	log.Debug("vesting: annual mint", "year", yearIndex, "amount", mintAmount, "bps", bps)
	return nil
}

// ClaimVested releases every tranche that has crossed its time threshold and
// transfers the sum to the claimant.
//
// Only the previous tracked year's cohort and the current year's cohort are
// inspected. Cohorts older than the tracked year are never revisited: if
// claims are skipped for more than a full year, the skipped cohort's
// unreleased tranches stay locked in the vesting pool. Calling twice in the
// same window releases nothing the second time.
func ClaimVested(db vm.StateDB, cfg *params.ChainConfig, claimant common.Address, now uint64) error {
	if err := perm.Require(db, cfg, perm.RoleVestingClaimant, claimant); err != nil {
		return err
	}

	lastYear := LastYearIndex(db)
	yearIndex := cfg.YearIndex(now)

	releasable := releaseCohort(db, cfg, lastYear, now)
	if yearIndex != lastYear {
		releasable.Add(releasable, releaseCohort(db, cfg, yearIndex, now))
		setLastYearIndex(db, yearIndex)
	}

	if releasable.Sign() > 0 {
		if err := token.Transfer(db, cfg, params.VestingAddress, claimant, releasable); err != nil {
			return err
		}
	}
	emitVestedClaimed(db, claimant, releasable, yearIndex)
	log.Debug("vesting: claim", "claimant", claimant, "released", releasable, "year", yearIndex)
	return nil
}

// releaseCohort flips every newly eligible tranche flag of one cohort and
// returns the released amount. The 15-month tranche takes the integer
// remainder so the three tranches always sum to the cohort total.
func releaseCohort(db vm.StateDB, cfg *params.ChainConfig, yearIndex uint64, now uint64) *big.Int {
	released := new(big.Int)
	c, ok := GetCohort(db, yearIndex)
	if !ok || c.fullyReleased() {
		return released
	}

	start := cfg.YearStart(yearIndex)
	third := new(big.Int).Div(c.TotalAmount, big.NewInt(3))

	if !c.NineMonthReleased && now >= start+params.NineMonthSeconds {
		released.Add(released, third)
		c.NineMonthReleased = true
	}
	if !c.TwelveMonthReleased && now >= start+params.TwelveMonthSeconds {
		released.Add(released, third)
		c.TwelveMonthReleased = true
	}
	if !c.FifteenMonthReleased && now >= start+params.FifteenMonthSeconds {
		remainder := new(big.Int).Sub(c.TotalAmount, new(big.Int).Mul(third, big.NewInt(2)))
		released.Add(released, remainder)
		c.FifteenMonthReleased = true
	}

	if released.Sign() > 0 {
		writeCohort(db, yearIndex, c)
	}
	return released
}
