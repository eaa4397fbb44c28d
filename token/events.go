package token

import (
	"encoding/json"
	"math/big"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/types"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

// Event topics. Topics[0] of every emitted record is the keccak hash of the
// event name, so consumers can filter without decoding payloads.
var (
	TopicTransfer            = crypto.Keccak256Hash([]byte("Transfer"))
	TopicMint                = crypto.Keccak256Hash([]byte("Mint"))
	TopicBurn                = crypto.Keccak256Hash([]byte("Burn"))
	TopicFeeRateChanged      = crypto.Keccak256Hash([]byte("FeeRateChanged"))
	TopicFeeExemptionChanged = crypto.Keccak256Hash([]byte("FeeExemptionChanged"))
)

// TransferEvent is the audit payload of a fee-bearing transfer.
type TransferEvent struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
	Fee    *big.Int       `json:"fee"`
}

// MintEvent is the audit payload of a supply expansion.
type MintEvent struct {
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
}

// BurnEvent is the audit payload of a supply contraction.
type BurnEvent struct {
	From   common.Address `json:"from"`
	Amount *big.Int       `json:"amount"`
}

// FeeRateChangedEvent records an administrative fee-rate update.
type FeeRateChangedEvent struct {
	OldPercent uint64 `json:"oldPercent"`
	NewPercent uint64 `json:"newPercent"`
}

// FeeExemptionChangedEvent records an exemption-list toggle.
type FeeExemptionChangedEvent struct {
	Account common.Address `json:"account"`
	Exempt  bool           `json:"exempt"`
}

func emit(db vm.StateDB, topic common.Hash, payload interface{}) {
	data, _ := json.Marshal(payload)
	db.AddLog(&types.Log{
		Address: params.TokenAddress,
		Topics:  []common.Hash{topic},
		Data:    data,
	})
}

func emitTransfer(db vm.StateDB, from, to common.Address, amount, fee *big.Int) {
	emit(db, TopicTransfer, &TransferEvent{From: from, To: to, Amount: amount, Fee: fee})
}

func emitMint(db vm.StateDB, to common.Address, amount *big.Int) {
	emit(db, TopicMint, &MintEvent{To: to, Amount: amount})
}

func emitBurn(db vm.StateDB, from common.Address, amount *big.Int) {
	emit(db, TopicBurn, &BurnEvent{From: from, Amount: amount})
}

func emitFeeRateChanged(db vm.StateDB, oldPct, newPct uint64) {
	emit(db, TopicFeeRateChanged, &FeeRateChangedEvent{OldPercent: oldPct, NewPercent: newPct})
}

func emitFeeExemptionChanged(db vm.StateDB, account common.Address, exempt bool) {
	emit(db, TopicFeeExemptionChanged, &FeeExemptionChangedEvent{Account: account, Exempt: exempt})
}
