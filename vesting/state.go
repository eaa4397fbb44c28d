package vesting

import (
	"encoding/binary"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

// --- slot derivation ---

var (
	lastYearIndexSlot = crypto.Keccak256Hash([]byte("gprism.vesting.lastYearIndex"))
	mintFeeBpsSlot    = crypto.Keccak256Hash([]byte("gprism.vesting.currentMintFeeBps"))
)

func cohortSlot(yearIndex uint64, field string) common.Hash {
	var yb [8]byte
	binary.BigEndian.PutUint64(yb[:], yearIndex)
	key := append([]byte("gprism.vesting.cohort"), yb[:]...)
	key = append(key, []byte(field)...)
	return crypto.Keccak256Hash(key)
}

// --- word helpers ---

func readUint64(db vm.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.VestingAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeUint64(db vm.StateDB, slot common.Hash, n uint64) {
	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], n)
	db.SetState(params.VestingAddress, slot, word)
}

func readBool(db vm.StateDB, slot common.Hash) bool {
	return db.GetState(params.VestingAddress, slot)[31] != 0
}

func writeBool(db vm.StateDB, slot common.Hash, v bool) {
	var word common.Hash
	if v {
		word[31] = 1
	}
	db.SetState(params.VestingAddress, slot, word)
}

func readBig(db vm.StateDB, slot common.Hash) *big.Int {
	raw := db.GetState(params.VestingAddress, slot)
	return new(uint256.Int).SetBytes(raw[:]).ToBig()
}

func writeBig(db vm.StateDB, slot common.Hash, n *big.Int) {
	word, _ := uint256.FromBig(n)
	if word == nil {
		word = new(uint256.Int)
	}
	db.SetState(params.VestingAddress, slot, common.Hash(word.Bytes32()))
}

// --- mint schedule state ---

// LastYearIndex returns the most recently tracked vesting year.
func LastYearIndex(db vm.StateDB) uint64 {
	return readUint64(db, lastYearIndexSlot)
}

func setLastYearIndex(db vm.StateDB, yearIndex uint64) {
	writeUint64(db, lastYearIndexSlot, yearIndex)
}

// CurrentMintFeeBps returns the supply-expansion rate for the next annual
// mint. An unset slot means the schedule has not started decaying yet.
func CurrentMintFeeBps(db vm.StateDB) uint64 {
	if bps := readUint64(db, mintFeeBpsSlot); bps != 0 {
		return bps
	}
	return params.StartingMintFeeBps
}

func setMintFeeBps(db vm.StateDB, bps uint64) {
	writeUint64(db, mintFeeBpsSlot, bps)
}

// --- cohorts ---

func cohortExists(db vm.StateDB, yearIndex uint64) bool {
	return readBool(db, cohortSlot(yearIndex, "exists"))
}

func writeCohort(db vm.StateDB, yearIndex uint64, c *Cohort) {
	writeBool(db, cohortSlot(yearIndex, "exists"), true)
	writeBig(db, cohortSlot(yearIndex, "totalAmount"), c.TotalAmount)
	writeBool(db, cohortSlot(yearIndex, "nineMonth"), c.NineMonthReleased)
	writeBool(db, cohortSlot(yearIndex, "twelveMonth"), c.TwelveMonthReleased)
	writeBool(db, cohortSlot(yearIndex, "fifteenMonth"), c.FifteenMonthReleased)
}

// GetCohort reads the cohort for a vesting year. ok is false if the year
// never had a mint event.
func GetCohort(db vm.StateDB, yearIndex uint64) (*Cohort, bool) {
	if !cohortExists(db, yearIndex) {
		return nil, false
	}
	return &Cohort{
		TotalAmount:          readBig(db, cohortSlot(yearIndex, "totalAmount")),
		NineMonthReleased:    readBool(db, cohortSlot(yearIndex, "nineMonth")),
		TwelveMonthReleased:  readBool(db, cohortSlot(yearIndex, "twelveMonth")),
		FifteenMonthReleased: readBool(db, cohortSlot(yearIndex, "fifteenMonth")),
	}, true
}
