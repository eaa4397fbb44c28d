package bond

import (
	"fmt"
	"math/big"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&bondHandler{})
}

// bondHandler implements sysaction.Handler for bond lifecycle actions.
type bondHandler struct{}

func (h *bondHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionBondDeposit,
		sysaction.ActionBondWithdraw,
		sysaction.ActionCertTransfer:
		return true
	}
	return false
}

func (h *bondHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	db := ctx.StateDB
	value := ctx.Value
	if value == nil {
		value = new(big.Int)
	}

	switch sa.Action {
	case sysaction.ActionBondDeposit:
		var p sysaction.BondDepositPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("bond deposit: %w", err)
		}
		kind := p.AssetKind
		if kind == "" {
			kind = NativeAssetKind
		}
		principal := value
		if kind != NativeAssetKind {
			if p.Principal == "" {
				return ErrInvalidAmount
			}
			principal = new(big.Int)
			if _, ok := principal.SetString(p.Principal, 10); !ok {
				return fmt.Errorf("bond deposit: invalid principal: %s", p.Principal)
			}
		}
		// Native principal moves into custody before the state machine runs,
		// matching how staking value reaches the staking address.
		if kind == NativeAssetKind && value.Sign() > 0 {
			db.SubBalance(ctx.From, value)
			db.AddBalance(params.BondAddress, value)
		}
		_, err := Deposit(db, ctx.ChainConfig, ctx.From, principal, p.MaturityDays, p.BondFeeBps, kind, value, ctx.Time)
		return err

	case sysaction.ActionBondWithdraw:
		var p sysaction.BondWithdrawPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("bond withdraw: %w", err)
		}
		return Withdraw(db, ctx.ChainConfig, ctx.From, p.CertificateID, ctx.Time)

	case sysaction.ActionCertTransfer:
		var p sysaction.CertTransferPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("cert transfer: %w", err)
		}
		if !common.IsHexAddress(p.To) {
			return fmt.Errorf("cert transfer: invalid recipient: %s", p.To)
		}
		return CertificateRegistry{}.Transfer(db, ctx.From, common.HexToAddress(p.To), p.CertificateID)
	}
	return fmt.Errorf("bond handler: unsupported action %q", sa.Action)
}
