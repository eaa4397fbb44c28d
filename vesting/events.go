package vesting

import (
	"encoding/json"
	"math/big"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/types"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

var (
	TopicMintAndVest   = crypto.Keccak256Hash([]byte("MintAndVest"))
	TopicVestedClaimed = crypto.Keccak256Hash([]byte("VestedClaimed"))
)

// MintAndVestEvent is the audit payload of an annual mint event.
type MintAndVestEvent struct {
	YearIndex  uint64   `json:"yearIndex"`
	Amount     *big.Int `json:"amount"`
	MintFeeBps uint64   `json:"mintFeeBps"`
}

// VestedClaimedEvent is the audit payload of a tranche-release claim.
type VestedClaimedEvent struct {
	Claimant  common.Address `json:"claimant"`
	Released  *big.Int       `json:"released"`
	YearIndex uint64         `json:"yearIndex"`
}

func emit(db vm.StateDB, topic common.Hash, payload interface{}) {
	data, _ := json.Marshal(payload)
	db.AddLog(&types.Log{
		Address: params.VestingAddress,
		Topics:  []common.Hash{topic},
		Data:    data,
	})
}

func emitMintAndVest(db vm.StateDB, yearIndex uint64, amount *big.Int, bps uint64) {
	emit(db, TopicMintAndVest, &MintAndVestEvent{YearIndex: yearIndex, Amount: amount, MintFeeBps: bps})
}

func emitVestedClaimed(db vm.StateDB, claimant common.Address, released *big.Int, yearIndex uint64) {
	emit(db, TopicVestedClaimed, &VestedClaimedEvent{Claimant: claimant, Released: released, YearIndex: yearIndex})
}
