package bond

import (
	"encoding/binary"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

const assetKindChunkSize = 32

// --- slot derivation ---

var (
	guardSlot         = crypto.Keccak256Hash([]byte("gprism.bond.reentrancyGuard"))
	rewardIndexSlot   = crypto.Keccak256Hash([]byte("gprism.bond.rewardShareIndex"))
	lastDistAmtSlot   = crypto.Keccak256Hash([]byte("gprism.bond.lastDistributedAmount"))
	lastEpochTimeSlot = crypto.Keccak256Hash([]byte("gprism.bond.lastEpochTime"))
)

func bondSlot(id uint64, field string) common.Hash {
	var idb [8]byte
	binary.BigEndian.PutUint64(idb[:], id)
	key := append([]byte("gprism.bond.record"), idb[:]...)
	key = append(key, []byte(field)...)
	return crypto.Keccak256Hash(key)
}

func assetKindChunkSlot(id uint64, index uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)
	base := bondSlot(id, "assetKind")
	buf := append(base.Bytes(), 0x00)
	buf = append(buf, []byte("chunk")...)
	buf = append(buf, idx[:]...)
	return crypto.Keccak256Hash(buf)
}

// --- word helpers ---

func readUint64(db vm.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.BondAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeUint64(db vm.StateDB, slot common.Hash, n uint64) {
	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], n)
	db.SetState(params.BondAddress, slot, word)
}

func readBool(db vm.StateDB, slot common.Hash) bool {
	return db.GetState(params.BondAddress, slot)[31] != 0
}

func writeBool(db vm.StateDB, slot common.Hash, v bool) {
	var word common.Hash
	if v {
		word[31] = 1
	}
	db.SetState(params.BondAddress, slot, word)
}

func readBig(db vm.StateDB, slot common.Hash) *big.Int {
	raw := db.GetState(params.BondAddress, slot)
	return new(uint256.Int).SetBytes(raw[:]).ToBig()
}

func writeBig(db vm.StateDB, slot common.Hash, n *big.Int) {
	word, _ := uint256.FromBig(n)
	if word == nil {
		word = new(uint256.Int)
	}
	db.SetState(params.BondAddress, slot, common.Hash(word.Bytes32()))
}

// --- asset kind string storage (chunked, accountsigner-style) ---

func writeAssetKind(db vm.StateDB, id uint64, kind string) {
	raw := []byte(kind)
	writeUint64(db, bondSlot(id, "assetKindLen"), uint64(len(raw)))
	for i := uint64(0); i*assetKindChunkSize < uint64(len(raw)); i++ {
		start := i * assetKindChunkSize
		end := start + assetKindChunkSize
		if end > uint64(len(raw)) {
			end = uint64(len(raw))
		}
		var word common.Hash
		copy(word[:], raw[start:end])
		db.SetState(params.BondAddress, assetKindChunkSlot(id, i), word)
	}
}

func readAssetKind(db vm.StateDB, id uint64) string {
	length := readUint64(db, bondSlot(id, "assetKindLen"))
	if length == 0 {
		return ""
	}
	raw := make([]byte, length)
	for i := uint64(0); i*assetKindChunkSize < length; i++ {
		word := db.GetState(params.BondAddress, assetKindChunkSlot(id, i))
		start := i * assetKindChunkSize
		end := start + assetKindChunkSize
		if end > length {
			end = length
		}
		copy(raw[start:end], word[:end-start])
	}
	return string(raw)
}

// --- bond records ---

func bondExists(db vm.StateDB, id uint64) bool {
	return readBool(db, bondSlot(id, "exists"))
}

func writeBond(db vm.StateDB, id uint64, b *Bond) {
	writeBool(db, bondSlot(id, "exists"), true)
	writeBool(db, bondSlot(id, "withdrawn"), b.Withdrawn)
	writeBig(db, bondSlot(id, "principal"), b.Principal)
	writeUint64(db, bondSlot(id, "startTime"), b.StartTime)
	writeUint64(db, bondSlot(id, "maturityDays"), b.MaturityDays)
	writeUint64(db, bondSlot(id, "bondFeeBps"), b.BondFeeBps)
	writeUint64(db, bondSlot(id, "refractionIdx"), b.RefractionIndex.Tenths())
	writeAssetKind(db, id, b.AssetKind)
}

func setWithdrawn(db vm.StateDB, id uint64) {
	writeBool(db, bondSlot(id, "withdrawn"), true)
}

// GetBond reads the complete record for a certificate id.
func GetBond(db vm.StateDB, id uint64) (*Bond, error) {
	if !bondExists(db, id) {
		return nil, ErrUnknownCertificate
	}
	return &Bond{
		Withdrawn:       readBool(db, bondSlot(id, "withdrawn")),
		Principal:       readBig(db, bondSlot(id, "principal")),
		StartTime:       readUint64(db, bondSlot(id, "startTime")),
		MaturityDays:    readUint64(db, bondSlot(id, "maturityDays")),
		AssetKind:       readAssetKind(db, id),
		BondFeeBps:      readUint64(db, bondSlot(id, "bondFeeBps")),
		RefractionIndex: RefractionIndex(readUint64(db, bondSlot(id, "refractionIdx"))),
	}, nil
}

// --- reentrancy guard ---

func enterGuard(db vm.StateDB) error {
	if readBool(db, guardSlot) {
		return ErrReentrantCall
	}
	writeBool(db, guardSlot, true)
	return nil
}

func exitGuard(db vm.StateDB) {
	writeBool(db, guardSlot, false)
}

// --- reward index accounting ---

// RewardShareIndex returns the cumulative reward-share index.
func RewardShareIndex(db vm.StateDB) *big.Int {
	return readBig(db, rewardIndexSlot)
}

// LastDistributedAmount returns the fee amount consumed by the most recent
// epoch distribution.
func LastDistributedAmount(db vm.StateDB) *big.Int {
	return readBig(db, lastDistAmtSlot)
}

// LastEpochTime returns the timestamp of the most recent fee distribution.
func LastEpochTime(db vm.StateDB) uint64 {
	return readUint64(db, lastEpochTimeSlot)
}

// SetLastEpochTime records the timestamp of a fee distribution. Called by the
// epoch distributor only.
func SetLastEpochTime(db vm.StateDB, now uint64) {
	writeUint64(db, lastEpochTimeSlot, now)
}
