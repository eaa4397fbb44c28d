// Copyright 2024 The gprism Authors
// This file is part of the gprism library.
//
// The gprism library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gprism library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gprism library. If not, see <http://www.gnu.org/licenses/>.

// Package types contains data types shared by protocol packages and consumers.
package types

import "github.com/prism-network/gprism/common"

// Log represents one audit event emitted by a protocol operation. Every state
// transition an off-chain consumer must be able to reconstruct emits one.
type Log struct {
	// Consensus fields:
	// address of the system component that generated the event
	Address common.Address `json:"address"`
	// list of topics identifying the event kind; Topics[0] is the keccak hash
	// of the event name
	Topics []common.Hash `json:"topics"`
	// JSON-encoded payload carrying the fields of the state transition
	Data []byte `json:"data"`

	// Derived fields, filled in by the surrounding execution context:
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	TxIndex     uint   `json:"transactionIndex,omitempty"`
	Index       uint   `json:"logIndex,omitempty"`
}
