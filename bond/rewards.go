package bond

import (
	"math/big"

	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/log"
)

// RewardSink receives the drained fee pool each epoch and recomputes the
// per-holder share index. How holders are weighted (by principal and
// refraction index) is the sink's concern; the call contract only requires
// that a zero amount is a safe no-op.
type RewardSink interface {
	EpochRewardShareIndex(db vm.StateDB, amount *big.Int) error
}

// ShareIndexSink is the default slot-backed sink: it accumulates the epoch
// amount into the cumulative reward-share index and records the last consumed
// amount for auditability.
type ShareIndexSink struct{}

// EpochRewardShareIndex folds amount into the reward-share index.
func (ShareIndexSink) EpochRewardShareIndex(db vm.StateDB, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	cur := RewardShareIndex(db)
	writeBig(db, rewardIndexSlot, new(big.Int).Add(cur, amount))
	writeBig(db, lastDistAmtSlot, amount)
	log.Trace("bond: reward share index updated", "amount", amount)
	return nil
}

// DefaultRewardSink is the sink invoked by the epoch distributor unless a
// test installs its own.
var DefaultRewardSink RewardSink = ShareIndexSink{}
