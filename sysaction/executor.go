package sysaction

import (
	"fmt"
	"math/big"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/params"
)

// Context carries information available to a system-action handler.
type Context struct {
	From        common.Address
	Value       *big.Int
	Time        uint64 // wall-clock timestamp of the enclosing block
	BlockNumber *big.Int
	StateDB     vm.StateDB
	ChainConfig *params.ChainConfig
}

// Handler is implemented by the token, bond, vesting and distributor sub-systems.
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *Context, sa *SysAction) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// DefaultRegistry is the process-wide handler registry.
var DefaultRegistry = &Registry{}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

// Msg is the minimal message interface for Execute, satisfied by core.Message.
type Msg interface {
	From() common.Address
	To() *common.Address
	Value() *big.Int
	Data() []byte
}

// Execute processes a system action from msg and dispatches to a registered
// handler. The StateDB is snapshotted before dispatch and reverted on error,
// so every action is all-or-nothing. Returns (gasUsed, error).
func Execute(msg Msg, db vm.StateDB, cfg *params.ChainConfig, time uint64, blockNumber *big.Int) (uint64, error) {
	sa, err := Decode(msg.Data())
	if err != nil {
		return params.SysActionGas, err
	}
	ctx := &Context{
		From:        msg.From(),
		Value:       msg.Value(),
		Time:        time,
		BlockNumber: blockNumber,
		StateDB:     db,
		ChainConfig: cfg,
	}
	return params.SysActionGas, dispatch(ctx, sa)
}

// ExecuteWithContext dispatches using a pre-built Context (used in tests).
func ExecuteWithContext(ctx *Context, data []byte) error {
	sa, err := Decode(data)
	if err != nil {
		return err
	}
	return dispatch(ctx, sa)
}

func dispatch(ctx *Context, sa *SysAction) error {
	for _, h := range DefaultRegistry.handlers {
		if h.CanHandle(sa.Action) {
			snap := ctx.StateDB.Snapshot()
			if err := h.Handle(ctx, sa); err != nil {
				ctx.StateDB.RevertToSnapshot(snap)
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("unknown system action: %q", sa.Action)
}
