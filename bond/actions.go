package bond

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/log"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/token"
)

// Deposit locks principal for maturityDays and opens a new bond.
//
// For native-asset deposits the attached value (already moved into
// params.BondAddress custody by the dispatching handler) must equal the
// principal. For external-asset deposits the registered provider pulls the
// principal into custody; its failure aborts the whole operation. A 1:1
// receipt balance is minted to the depositor and a fresh certificate bound to
// them. Returns the certificate id.
func Deposit(db vm.StateDB, cfg *params.ChainConfig, depositor common.Address,
	principal *big.Int, maturityDays, bondFeeBps uint64, assetKind string,
	attachedValue *big.Int, now uint64) (uint64, error) {

	if principal == nil || principal.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	if maturityDays < params.MinMaturityDays || maturityDays > params.MaxMaturityDays {
		return 0, ErrInvalidMaturity
	}
	if bondFeeBps > params.MaxBondFeeBps {
		return 0, ErrInvalidFee
	}

	if err := enterGuard(db); err != nil {
		return 0, err
	}
	defer exitGuard(db)

	if assetKind == NativeAssetKind {
		if attachedValue == nil || attachedValue.Cmp(principal) != 0 {
			return 0, ErrValueMismatch
		}
	} else {
		provider, err := assetProvider(assetKind)
		if err != nil {
			return 0, err
		}
		if err := provider.TransferIn(db, depositor, principal); err != nil {
			return 0, err
		}
	}

	if err := token.Mint(db, cfg, params.BondAddress, depositor, principal); err != nil {
		return 0, err
	}

	id, err := DefaultIssuer.Issue(db, depositor)
	if err != nil {
		return 0, err
	}

	b := &Bond{
		Withdrawn:       false,
		Principal:       principal,
		StartTime:       now,
		MaturityDays:    maturityDays,
		AssetKind:       assetKind,
		BondFeeBps:      bondFeeBps,
		RefractionIndex: RefractionIndexFor(maturityDays),
	}
	writeBond(db, id, b)
	emitDeposited(db, id, depositor, b)

	log.Debug("bond: deposit", "id", id, "depositor", depositor,
		"principal", principal, "maturityDays", maturityDays, "index", b.RefractionIndex)
	return id, nil
}

// Withdraw closes a matured bond: burns the receipt balance, pays the
// maturity-tier yield and returns the locked principal.
//
// The terminal withdrawn flag is committed before any external call so the
// certificate cannot be drained twice even if a collaborator re-enters.
func Withdraw(db vm.StateDB, cfg *params.ChainConfig, caller common.Address, id uint64, now uint64) error {
	b, err := GetBond(db, id)
	if err != nil {
		return err
	}
	if b.Withdrawn {
		return ErrAlreadyWithdrawn
	}
	owner, err := DefaultIssuer.OwnerOf(db, id)
	if err != nil {
		return err
	}
	if owner != caller {
		return ErrNotOwner
	}
	if now < b.MaturesAt() {
		return ErrNotMatured
	}

	if err := enterGuard(db); err != nil {
		return err
	}
	defer exitGuard(db)

	// Terminal flag first; everything after this point may call out.
	setWithdrawn(db, id)

	if err := token.Burn(db, cfg, params.BondAddress, caller, b.Principal); err != nil {
		return err
	}

	principal, _ := uint256.FromBig(b.Principal)
	yield := new(uint256.Int).Mul(principal, uint256.NewInt(InterestRate(b.MaturityDays)))
	yield.Div(yield, uint256.NewInt(100))
	if err := token.Mint(db, cfg, params.BondAddress, caller, yield.ToBig()); err != nil {
		return err
	}

	if b.AssetKind == NativeAssetKind {
		db.SubBalance(params.BondAddress, b.Principal)
		db.AddBalance(caller, b.Principal)
	} else {
		provider, err := assetProvider(b.AssetKind)
		if err != nil {
			return err
		}
		if err := provider.TransferOut(db, caller, b.Principal); err != nil {
			return err
		}
	}

	emitWithdrawn(db, id, caller, b, yield.ToBig())
	log.Debug("bond: withdraw", "id", id, "owner", caller,
		"principal", b.Principal, "yield", yield)
	return nil
}
