package vesting

import (
	"fmt"

	"github.com/prism-network/gprism/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&vestingHandler{})
}

// vestingHandler implements sysaction.Handler for supply-expansion actions.
type vestingHandler struct{}

func (h *vestingHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionMintAndVest, sysaction.ActionClaimVested:
		return true
	}
	return false
}

func (h *vestingHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionMintAndVest:
		return MintAndVest(ctx.StateDB, ctx.ChainConfig, ctx.From, ctx.Time)
	case sysaction.ActionClaimVested:
		return ClaimVested(ctx.StateDB, ctx.ChainConfig, ctx.From, ctx.Time)
	}
	return fmt.Errorf("vesting handler: unsupported action %q", sa.Action)
}
