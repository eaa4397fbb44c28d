package token

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

// --- slot derivation ---

var (
	feePoolSlot     = crypto.Keccak256Hash([]byte("gprism.token.feePool"))
	totalMintedSlot = crypto.Keccak256Hash([]byte("gprism.token.totalMinted"))
	totalBurnedSlot = crypto.Keccak256Hash([]byte("gprism.token.totalBurned"))
	feePercentSlot  = crypto.Keccak256Hash([]byte("gprism.token.refractionFeePercent"))
)

func exemptSlot(addr common.Address) common.Hash {
	key := append([]byte("gprism.token.feeExempt"), addr.Bytes()...)
	return crypto.Keccak256Hash(key)
}

// --- word helpers ---

func readWord(db vm.StateDB, slot common.Hash) *uint256.Int {
	raw := db.GetState(params.TokenAddress, slot)
	return new(uint256.Int).SetBytes(raw[:])
}

func writeWord(db vm.StateDB, slot common.Hash, n *uint256.Int) {
	db.SetState(params.TokenAddress, slot, common.Hash(n.Bytes32()))
}

func readBool(db vm.StateDB, slot common.Hash) bool {
	return db.GetState(params.TokenAddress, slot)[31] != 0
}

func writeBool(db vm.StateDB, slot common.Hash, v bool) {
	var word common.Hash
	if v {
		word[31] = 1
	}
	db.SetState(params.TokenAddress, slot, word)
}

// --- queries ---

// BalanceOf returns the ledger balance of addr.
func BalanceOf(db vm.StateDB, addr common.Address) *big.Int {
	return db.GetBalance(addr)
}

// FeePool returns the accumulated, not yet distributed refraction fees.
func FeePool(db vm.StateDB) *big.Int {
	return readWord(db, feePoolSlot).ToBig()
}

// TotalMinted returns the cumulative minted supply.
func TotalMinted(db vm.StateDB) *big.Int {
	return readWord(db, totalMintedSlot).ToBig()
}

// TotalBurned returns the cumulative burned supply.
func TotalBurned(db vm.StateDB) *big.Int {
	return readWord(db, totalBurnedSlot).ToBig()
}

// TotalSupply returns totalMinted - totalBurned.
func TotalSupply(db vm.StateDB) *big.Int {
	return new(big.Int).Sub(TotalMinted(db), TotalBurned(db))
}

// RefractionFeePercent returns the current transfer-fee percentage. An unset
// slot falls back to the config default, then the protocol default.
func RefractionFeePercent(db vm.StateDB, cfg *params.ChainConfig) uint64 {
	if pct := readWord(db, feePercentSlot).Uint64(); pct != 0 {
		return pct
	}
	if cfg != nil && cfg.RefractionFeePercent != 0 {
		return cfg.RefractionFeePercent
	}
	return params.DefaultRefractionFeePercent
}

// IsFeeExempt reports whether addr is on the fee exemption list.
func IsFeeExempt(db vm.StateDB, addr common.Address) bool {
	return readBool(db, exemptSlot(addr))
}

// --- internal mutators ---

// addFeePool accrues fee units into the pool with a saturating add; the pool
// is only ever drained to zero by the distributor.
func addFeePool(db vm.StateDB, delta *uint256.Int) {
	cur := readWord(db, feePoolSlot)
	sum, overflow := new(uint256.Int).AddOverflow(cur, delta)
	if overflow {
		sum = new(uint256.Int).SetAllOne()
	}
	writeWord(db, feePoolSlot, sum)
}

// resetFeePool zeroes the pool and returns the drained amount.
func resetFeePool(db vm.StateDB) *big.Int {
	cur := readWord(db, feePoolSlot)
	writeWord(db, feePoolSlot, new(uint256.Int))
	return cur.ToBig()
}

func addTotalMinted(db vm.StateDB, delta *uint256.Int) {
	cur := readWord(db, totalMintedSlot)
	writeWord(db, totalMintedSlot, new(uint256.Int).Add(cur, delta))
}

func addTotalBurned(db vm.StateDB, delta *uint256.Int) {
	cur := readWord(db, totalBurnedSlot)
	writeWord(db, totalBurnedSlot, new(uint256.Int).Add(cur, delta))
}
