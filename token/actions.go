package token

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/log"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/perm"
)

// Transfer moves amount from `from` to `to`, skimming the refraction fee into
// the pool unless either side is fee-exempt.
//
// fee = floor(amount * refractionFeePercent / 100). The sender pays the full
// amount; the recipient receives amount-fee; the fee moves to the
// params.TokenAddress pool-holding account and accrues into the fee pool slot.
func Transfer(db vm.StateDB, cfg *params.ChainConfig, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}

	if IsFeeExempt(db, from) || IsFeeExempt(db, to) {
		db.SubBalance(from, amount)
		db.AddBalance(to, amount)
		emitTransfer(db, from, to, amount, new(big.Int))
		return nil
	}

	value, _ := uint256.FromBig(amount)
	fee := new(uint256.Int).Mul(value, uint256.NewInt(RefractionFeePercent(db, cfg)))
	fee.Div(fee, uint256.NewInt(100))

	net := new(uint256.Int).Sub(value, fee)

	db.SubBalance(from, amount)
	db.AddBalance(to, net.ToBig())
	if !fee.IsZero() {
		db.AddBalance(params.TokenAddress, fee.ToBig())
		addFeePool(db, fee)
	}
	emitTransfer(db, from, to, amount, fee.ToBig())

	log.Trace("token: transfer", "from", from, "to", to, "amount", amount, "fee", fee)
	return nil
}

// Mint creates amount new units on `to` and advances totalMinted in the same
// operation, preserving sum(balances) == totalMinted - totalBurned.
// Restricted to holders of the minter capability.
func Mint(db vm.StateDB, cfg *params.ChainConfig, caller, to common.Address, amount *big.Int) error {
	if err := perm.Require(db, cfg, perm.RoleMinter, caller); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	value, _ := uint256.FromBig(amount)
	db.AddBalance(to, amount)
	addTotalMinted(db, value)
	emitMint(db, to, amount)
	return nil
}

// Burn destroys amount units held by `from` and advances totalBurned in the
// same operation. Restricted to holders of the minter capability.
func Burn(db vm.StateDB, cfg *params.ChainConfig, caller, from common.Address, amount *big.Int) error {
	if err := perm.Require(db, cfg, perm.RoleMinter, caller); err != nil {
		return err
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	value, _ := uint256.FromBig(amount)
	db.SubBalance(from, amount)
	addTotalBurned(db, value)
	emitBurn(db, from, amount)
	return nil
}

// SetRefractionFee updates the transfer-fee percentage. A zero or
// out-of-range percent is rejected. Restricted to the fee admin.
func SetRefractionFee(db vm.StateDB, cfg *params.ChainConfig, caller common.Address, percent uint64) error {
	if err := perm.Require(db, cfg, perm.RoleFeeAdmin, caller); err != nil {
		return err
	}
	if percent == 0 || percent > params.MaxRefractionFeePercent {
		return ErrInvalidParameter
	}
	old := RefractionFeePercent(db, cfg)
	writeWord(db, feePercentSlot, uint256.NewInt(percent))
	emitFeeRateChanged(db, old, percent)
	log.Debug("token: refraction fee changed", "old", old, "new", percent)
	return nil
}

// SetFeeExempt toggles the exemption flag for account. No upper bound is
// enforced on the list size; that is an administrative trust boundary.
// Restricted to the fee admin.
func SetFeeExempt(db vm.StateDB, cfg *params.ChainConfig, caller, account common.Address, exempt bool) error {
	if err := perm.Require(db, cfg, perm.RoleFeeAdmin, caller); err != nil {
		return err
	}
	if account == (common.Address{}) {
		return ErrZeroAccount
	}
	writeBool(db, exemptSlot(account), exempt)
	emitFeeExemptionChanged(db, account, exempt)
	return nil
}

// DrainFeePool zeroes the fee pool counter and returns the drained amount.
// Called by the epoch distributor only; the pooled balance itself still sits
// on params.TokenAddress and must be moved by the caller.
func DrainFeePool(db vm.StateDB) *big.Int {
	return resetFeePool(db)
}
