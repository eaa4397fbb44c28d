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

// Package genesis wires the protocol's system accounts into a fresh state:
// capability grants for the protocol addresses and fee exemptions for the
// accounts that must never be skimmed.
package genesis

import (
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/perm"
	"github.com/prism-network/gprism/token"
)

// Setup initializes capability grants and exemptions on a fresh state.
// The bond registry and the vesting minter mint and burn through the ledger,
// so both hold the minter capability; all system addresses are fee-exempt so
// internal moves (custody, vesting payouts, pool drains) never skim.
func Setup(db vm.StateDB, cfg *params.ChainConfig) error {
	admin := cfg.GenesisAdmin

	if err := perm.Grant(db, cfg, admin, perm.RoleMinter, params.BondAddress); err != nil {
		return err
	}
	if err := perm.Grant(db, cfg, admin, perm.RoleMinter, params.VestingAddress); err != nil {
		return err
	}

	for _, a := range systemAccounts() {
		if err := token.SetFeeExempt(db, cfg, admin, a, true); err != nil {
			return err
		}
	}
	return nil
}

func systemAccounts() []common.Address {
	return []common.Address{
		params.TokenAddress,
		params.BondAddress,
		params.VestingAddress,
	}
}
