// Package perm implements the slot-backed capability table gating privileged
// protocol operations. Capabilities are granted and revoked only by the
// genesis admin recorded in the chain config; richer role administration is an
// off-chain concern.
package perm

import (
	"errors"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

// Role names a capability checked by privileged operations.
type Role string

const (
	// RoleFeeAdmin may change the refraction fee rate and the exemption list.
	RoleFeeAdmin Role = "feeAdmin"

	// RoleMinter may mint and burn ledger balances and trigger the annual
	// mint-and-vest event. The bond registry address holds it at genesis.
	RoleMinter Role = "minter"

	// RoleDistributor may trigger epoch fee distribution.
	RoleDistributor Role = "distributor"

	// RoleVestingClaimant may claim released vesting tranches.
	RoleVestingClaimant Role = "vestingClaimant"
)

// ErrUnauthorized is returned when a caller lacks the required capability.
var ErrUnauthorized = errors.New("perm: caller lacks required capability")

func roleSlot(role Role, addr common.Address) common.Hash {
	key := append([]byte("gprism.perm."), []byte(role)...)
	key = append(key, addr.Bytes()...)
	return crypto.Keccak256Hash(key)
}

// Has reports whether addr holds the given capability. The genesis admin
// implicitly holds every capability.
func Has(db vm.StateDB, cfg *params.ChainConfig, role Role, addr common.Address) bool {
	if cfg != nil && addr == cfg.GenesisAdmin {
		return true
	}
	return db.GetState(params.TokenAddress, roleSlot(role, addr))[31] != 0
}

// Require returns ErrUnauthorized unless addr holds the given capability.
func Require(db vm.StateDB, cfg *params.ChainConfig, role Role, addr common.Address) error {
	if !Has(db, cfg, role, addr) {
		return ErrUnauthorized
	}
	return nil
}

// Grant gives addr the capability. Only the genesis admin may grant.
func Grant(db vm.StateDB, cfg *params.ChainConfig, caller common.Address, role Role, addr common.Address) error {
	if cfg == nil || caller != cfg.GenesisAdmin {
		return ErrUnauthorized
	}
	var word common.Hash
	word[31] = 1
	db.SetState(params.TokenAddress, roleSlot(role, addr), word)
	return nil
}

// Revoke removes the capability from addr. Only the genesis admin may revoke.
func Revoke(db vm.StateDB, cfg *params.ChainConfig, caller common.Address, role Role, addr common.Address) error {
	if cfg == nil || caller != cfg.GenesisAdmin {
		return ErrUnauthorized
	}
	db.SetState(params.TokenAddress, roleSlot(role, addr), common.Hash{})
	return nil
}
