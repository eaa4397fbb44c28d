package distributor

import (
	"errors"
	"math/big"
	"testing"

	"github.com/prism-network/gprism/bond"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/genesis"
	"github.com/prism-network/gprism/core/state"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/perm"
	"github.com/prism-network/gprism/prismdb/memorydb"
	"github.com/prism-network/gprism/token"
)

var cfg = params.TestChainConfig

func newTestState(t *testing.T) *state.StateDB {
	t.Helper()
	st := state.New(memorydb.New())
	if err := genesis.Setup(st, cfg); err != nil {
		t.Fatalf("genesis: %v", err)
	}
	return st
}

// accrueFees runs one fee-bearing transfer so the pool holds a known amount.
func accrueFees(t *testing.T, st *state.StateDB, amount int64) *big.Int {
	t.Helper()
	from, to := common.Address{0x01}, common.Address{0x02}
	if err := token.Mint(st, cfg, cfg.GenesisAdmin, from, big.NewInt(amount)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := token.Transfer(st, cfg, from, to, big.NewInt(amount)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	pool := token.FeePool(st)
	if pool.Sign() == 0 {
		t.Fatalf("no fees accrued")
	}
	return pool
}

func TestDistributeEmptyPool(t *testing.T) {
	st := newTestState(t)
	err := DistributeRefractionFees(st, cfg, cfg.GenesisAdmin, 100)
	if !errors.Is(err, ErrNoFeesToDistribute) {
		t.Fatalf("want ErrNoFeesToDistribute, got %v", err)
	}
}

func TestDistributeRequiresRole(t *testing.T) {
	st := newTestState(t)
	if err := DistributeRefractionFees(st, cfg, common.Address{0x99}, 100); !errors.Is(err, perm.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestDistributeDrainsPoolIntoShareIndex(t *testing.T) {
	st := newTestState(t)
	pool := accrueFees(t, st, 1000) // 5% of 1000

	if pool.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("fee pool: have %v want 50", pool)
	}
	if err := DistributeRefractionFees(st, cfg, cfg.GenesisAdmin, 7777); err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if got := token.FeePool(st); got.Sign() != 0 {
		t.Fatalf("pool not drained: %v", got)
	}
	if got := bond.RewardShareIndex(st); got.Cmp(pool) != 0 {
		t.Fatalf("share index: have %v want %v", got, pool)
	}
	if got := bond.LastDistributedAmount(st); got.Cmp(pool) != 0 {
		t.Fatalf("last amount: have %v want %v", got, pool)
	}
	if got := bond.LastEpochTime(st); got != 7777 {
		t.Fatalf("epoch time: have %d want 7777", got)
	}
	if got := st.GetBalance(params.BondAddress); got.Cmp(pool) != 0 {
		t.Fatalf("bond custody: have %v want %v", got, pool)
	}
	if got := st.GetBalance(params.TokenAddress); got.Sign() != 0 {
		t.Fatalf("ledger pool account not emptied: %v", got)
	}

	// A second epoch on an empty pool fails; the share index keeps its value.
	if err := DistributeRefractionFees(st, cfg, cfg.GenesisAdmin, 8888); !errors.Is(err, ErrNoFeesToDistribute) {
		t.Fatalf("second epoch: want ErrNoFeesToDistribute, got %v", err)
	}
	if got := bond.RewardShareIndex(st); got.Cmp(pool) != 0 {
		t.Fatalf("share index disturbed: have %v want %v", got, pool)
	}
}

// TestUnderfundedPoolLeavesStateUntouched forces the pooled balance below the
// fee pool counter and verifies the failed epoch mutates nothing.
func TestUnderfundedPoolLeavesStateUntouched(t *testing.T) {
	st := newTestState(t)
	pool := accrueFees(t, st, 1000)

	// Simulate an upstream accounting violation.
	st.SubBalance(params.TokenAddress, big.NewInt(1))

	if err := DistributeRefractionFees(st, cfg, cfg.GenesisAdmin, 42); !errors.Is(err, ErrPoolUnderfunded) {
		t.Fatalf("want ErrPoolUnderfunded, got %v", err)
	}
	if got := token.FeePool(st); got.Cmp(pool) != 0 {
		t.Fatalf("pool counter drained: have %v want %v", got, pool)
	}
	if got := bond.LastEpochTime(st); got != 0 {
		t.Fatalf("epoch time recorded: %d", got)
	}
	if got := bond.RewardShareIndex(st); got.Sign() != 0 {
		t.Fatalf("share index mutated: %v", got)
	}
}

func TestShareIndexAccumulatesAcrossEpochs(t *testing.T) {
	st := newTestState(t)

	first := accrueFees(t, st, 1000)
	if err := DistributeRefractionFees(st, cfg, cfg.GenesisAdmin, 1); err != nil {
		t.Fatalf("epoch 1: %v", err)
	}
	second := accrueFees(t, st, 400)
	if err := DistributeRefractionFees(st, cfg, cfg.GenesisAdmin, 2); err != nil {
		t.Fatalf("epoch 2: %v", err)
	}

	want := new(big.Int).Add(first, second)
	if got := bond.RewardShareIndex(st); got.Cmp(want) != 0 {
		t.Fatalf("cumulative index: have %v want %v", got, want)
	}
	if got := bond.LastDistributedAmount(st); got.Cmp(second) != 0 {
		t.Fatalf("last amount: have %v want %v", got, second)
	}
}
