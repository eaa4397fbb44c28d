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

package params

import (
	"fmt"
	"math/big"

	"github.com/prism-network/gprism/common"
)

// ChainConfig is the protocol configuration carried into every state
// transition. It is injected rather than ambient so operations stay pure over
// (config, state, input).
type ChainConfig struct {
	ChainID *big.Int `json:"chainId"` // chainId identifies the current chain and is used for replay protection

	// GenesisTime anchors the vesting year epoch. Year index of a wall-clock
	// time t is (t - GenesisTime) / YearSeconds.
	GenesisTime uint64 `json:"genesisTime"`

	// GenesisAdmin is the only address allowed to grant and revoke
	// capabilities. Role administration beyond this gate lives off-chain.
	GenesisAdmin common.Address `json:"genesisAdmin"`

	// RefractionFeePercent is the genesis transfer-fee percentage. A zero
	// value falls back to DefaultRefractionFeePercent.
	RefractionFeePercent uint64 `json:"refractionFeePercent,omitempty"`
}

// String implements fmt.Stringer, returning a summary usable in log lines.
func (c *ChainConfig) String() string {
	return fmt.Sprintf("{ChainID: %v GenesisTime: %d Admin: %s}", c.ChainID, c.GenesisTime, c.GenesisAdmin.Hex())
}

// YearIndex returns the vesting year index for the wall-clock time now.
// Times before genesis map to year zero.
func (c *ChainConfig) YearIndex(now uint64) uint64 {
	if now <= c.GenesisTime {
		return 0
	}
	return (now - c.GenesisTime) / YearSeconds
}

// YearStart returns the wall-clock start time of the given vesting year.
func (c *ChainConfig) YearStart(yearIndex uint64) uint64 {
	return c.GenesisTime + yearIndex*YearSeconds
}

// TestChainConfig is a config preset used throughout the test suites.
var TestChainConfig = &ChainConfig{
	ChainID:      big.NewInt(1337),
	GenesisTime:  0,
	GenesisAdmin: common.HexToAddress("0x000000000000000000000000000000000000AD31"),
}
