// Package distributor implements the epoch fee distribution glue: it drains
// the ledger's refraction fee pool into the bond registry's reward-index
// update. Epochs are on-demand, not clock-driven.
package distributor

import (
	"encoding/json"
	"errors"
	"math/big"

	"github.com/prism-network/gprism/bond"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/types"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/log"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/perm"
	"github.com/prism-network/gprism/token"
)

var (
	// ErrNoFeesToDistribute is returned when the fee pool is empty.
	ErrNoFeesToDistribute = errors.New("distributor: no fees to distribute")

	// ErrPoolUnderfunded is returned when the pooled balance cannot cover the
	// fee pool counter. It indicates a ledger accounting violation upstream;
	// the reward sink is never invoked in that case.
	ErrPoolUnderfunded = errors.New("distributor: pooled balance below fee pool")
)

// TopicFeesDistributed identifies epoch distribution audit records.
var TopicFeesDistributed = crypto.Keccak256Hash([]byte("FeesDistributed"))

// FeesDistributedEvent is the audit payload of one epoch distribution.
type FeesDistributedEvent struct {
	Amount    *big.Int `json:"amount"`
	EpochTime uint64   `json:"epochTime"`
}

// DistributeRefractionFees drains the fee pool and hands the amount to the
// bond registry's reward sink.
//
// The pooled balance is checked against the fee pool counter before anything
// is mutated, so a failed distribution leaves the pool counter and epoch time
// untouched even when called outside the dispatching executor. The sink is
// invoked only after the balance pull succeeds. Restricted to the distributor
// capability.
func DistributeRefractionFees(db vm.StateDB, cfg *params.ChainConfig, caller common.Address, now uint64) error {
	if err := perm.Require(db, cfg, perm.RoleDistributor, caller); err != nil {
		return err
	}
	amount := token.FeePool(db)
	if amount.Sign() == 0 {
		return ErrNoFeesToDistribute
	}
	if db.GetBalance(params.TokenAddress).Cmp(amount) < 0 {
		return ErrPoolUnderfunded
	}

	token.DrainFeePool(db)
	bond.SetLastEpochTime(db, now)
	db.SubBalance(params.TokenAddress, amount)
	db.AddBalance(params.BondAddress, amount)

	if err := bond.DefaultRewardSink.EpochRewardShareIndex(db, amount); err != nil {
		return err
	}

	data, _ := json.Marshal(&FeesDistributedEvent{Amount: amount, EpochTime: now})
	db.AddLog(&types.Log{
		Address: params.BondAddress,
		Topics:  []common.Hash{TopicFeesDistributed},
		Data:    data,
	})
	log.Debug("distributor: epoch fees distributed", "amount", amount, "time", now)
	return nil
}
