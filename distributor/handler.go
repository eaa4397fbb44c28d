package distributor

import (
	"fmt"

	"github.com/prism-network/gprism/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&distributorHandler{})
}

// distributorHandler implements sysaction.Handler for epoch distribution.
type distributorHandler struct{}

func (h *distributorHandler) CanHandle(kind sysaction.ActionKind) bool {
	return kind == sysaction.ActionDistributeFees
}

func (h *distributorHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	if sa.Action != sysaction.ActionDistributeFees {
		return fmt.Errorf("distributor handler: unsupported action %q", sa.Action)
	}
	return DistributeRefractionFees(ctx.StateDB, ctx.ChainConfig, ctx.From, ctx.Time)
}
