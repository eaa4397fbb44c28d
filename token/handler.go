package token

import (
	"fmt"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&tokenHandler{})
}

// tokenHandler implements sysaction.Handler for ledger administration actions.
type tokenHandler struct{}

func (h *tokenHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionTokenSetFee, sysaction.ActionTokenSetExempt:
		return true
	}
	return false
}

func (h *tokenHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionTokenSetFee:
		var p sysaction.SetFeePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("set fee: %w", err)
		}
		return SetRefractionFee(ctx.StateDB, ctx.ChainConfig, ctx.From, p.Percent)

	case sysaction.ActionTokenSetExempt:
		var p sysaction.SetExemptPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("set exempt: %w", err)
		}
		if !common.IsHexAddress(p.Account) {
			return fmt.Errorf("set exempt: invalid account address: %s", p.Account)
		}
		return SetFeeExempt(ctx.StateDB, ctx.ChainConfig, ctx.From, common.HexToAddress(p.Account), p.Exempt)
	}
	return fmt.Errorf("token handler: unsupported action %q", sa.Action)
}
