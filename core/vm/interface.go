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

// Package vm declares the execution environment contract consumed by the
// protocol packages. There is no interpreter; all execution happens through
// system actions dispatched over a StateDB.
package vm

import (
	"math/big"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/types"
)

// StateDB is the mutable world-state interface every protocol operation
// executes against.
type StateDB interface {
	GetBalance(common.Address) *big.Int
	AddBalance(common.Address, *big.Int)
	SubBalance(common.Address, *big.Int)

	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	AddLog(*types.Log)

	// Snapshot and RevertToSnapshot provide whole-operation atomicity: the
	// executor snapshots before dispatch and reverts on any error.
	Snapshot() int
	RevertToSnapshot(int)
}
