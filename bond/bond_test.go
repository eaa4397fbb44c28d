package bond

import (
	"errors"
	"math/big"
	"testing"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/state"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/perm"
	"github.com/prism-network/gprism/prismdb/memorydb"
	"github.com/prism-network/gprism/sysaction"
	"github.com/prism-network/gprism/token"
)

var cfg = params.TestChainConfig

// newTestState creates a fresh StateDB with the bond registry wired as the
// ledger's minter, matching genesis.
func newTestState(t *testing.T) *state.StateDB {
	t.Helper()
	st := state.New(memorydb.New())
	if err := perm.Grant(st, cfg, cfg.GenesisAdmin, perm.RoleMinter, params.BondAddress); err != nil {
		t.Fatalf("grant minter: %v", err)
	}
	return st
}

func tAddr(b byte) common.Address { return common.Address{b} }

// depositNative funds the depositor, moves the value into custody the way the
// dispatching handler does, and opens a native-asset bond.
func depositNative(t *testing.T, st *state.StateDB, depositor common.Address, principal int64, maturityDays uint64, now uint64) uint64 {
	t.Helper()
	value := big.NewInt(principal)
	st.AddBalance(depositor, value)
	st.SubBalance(depositor, value)
	st.AddBalance(params.BondAddress, value)
	id, err := Deposit(st, cfg, depositor, value, maturityDays, 0, NativeAssetKind, value, now)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	return id
}

func TestDepositValidation(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)

	if _, err := Deposit(st, cfg, d, big.NewInt(0), 30, 0, NativeAssetKind, big.NewInt(0), 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero principal: want ErrInvalidAmount, got %v", err)
	}
	if _, err := Deposit(st, cfg, d, big.NewInt(1), 6, 0, NativeAssetKind, big.NewInt(1), 0); !errors.Is(err, ErrInvalidMaturity) {
		t.Fatalf("maturity 6: want ErrInvalidMaturity, got %v", err)
	}
	if _, err := Deposit(st, cfg, d, big.NewInt(1), 366, 0, NativeAssetKind, big.NewInt(1), 0); !errors.Is(err, ErrInvalidMaturity) {
		t.Fatalf("maturity 366: want ErrInvalidMaturity, got %v", err)
	}
	if _, err := Deposit(st, cfg, d, big.NewInt(1), 30, 101, NativeAssetKind, big.NewInt(1), 0); !errors.Is(err, ErrInvalidFee) {
		t.Fatalf("fee 101: want ErrInvalidFee, got %v", err)
	}
	if _, err := Deposit(st, cfg, d, big.NewInt(10), 30, 0, NativeAssetKind, big.NewInt(9), 0); !errors.Is(err, ErrValueMismatch) {
		t.Fatalf("value mismatch: want ErrValueMismatch, got %v", err)
	}
}

// TestBondLifecycle is the end-to-end scenario: 1000 locked for 360 days
// yields a 46 refraction index, a 15% rate and a 150 payout.
func TestBondLifecycle(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)

	id := depositNative(t, st, d, 1000, 360, 0)

	// Receipt balance minted 1:1.
	if got := st.GetBalance(d); got.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("receipt balance: have %v want 1000", got)
	}
	b, err := GetBond(st, id)
	if err != nil {
		t.Fatalf("get bond: %v", err)
	}
	if b.RefractionIndex != RefractionIndex(460) {
		t.Fatalf("refraction index: have %s want 46", b.RefractionIndex)
	}
	if b.Withdrawn {
		t.Fatalf("fresh bond marked withdrawn")
	}

	matured := uint64(360 * 86400)

	// One second early fails; the exact maturity instant succeeds.
	if err := Withdraw(st, cfg, d, id, matured-1); !errors.Is(err, ErrNotMatured) {
		t.Fatalf("early withdraw: want ErrNotMatured, got %v", err)
	}
	if err := Withdraw(st, cfg, d, id, matured); err != nil {
		t.Fatalf("withdraw at maturity: %v", err)
	}

	// Receipt burned (1000), yield minted (150), principal returned (1000).
	if got := st.GetBalance(d); got.Cmp(big.NewInt(1150)) != 0 {
		t.Fatalf("post-withdraw balance: have %v want 1150", got)
	}
	b, _ = GetBond(st, id)
	if !b.Withdrawn {
		t.Fatalf("bond not terminal after withdraw")
	}
}

func TestWithdrawTwiceFails(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)
	id := depositNative(t, st, d, 500, 7, 0)

	matured := uint64(7 * 86400)
	if err := Withdraw(st, cfg, d, id, matured); err != nil {
		t.Fatalf("first withdraw: %v", err)
	}
	if err := Withdraw(st, cfg, d, id, matured+1); !errors.Is(err, ErrAlreadyWithdrawn) {
		t.Fatalf("second withdraw: want ErrAlreadyWithdrawn, got %v", err)
	}
}

func TestWithdrawNotOwner(t *testing.T) {
	st := newTestState(t)
	owner, thief := tAddr(0x01), tAddr(0x02)
	id := depositNative(t, st, owner, 500, 7, 0)

	if err := Withdraw(st, cfg, thief, id, 7*86400); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
}

func TestWithdrawUnknownCertificate(t *testing.T) {
	st := newTestState(t)
	if err := Withdraw(st, cfg, tAddr(0x01), 99, 0); !errors.Is(err, ErrUnknownCertificate) {
		t.Fatalf("want ErrUnknownCertificate, got %v", err)
	}
}

// TestCertificateTransferMovesWithdrawRight verifies the bond follows its
// certificate owner.
func TestCertificateTransferMovesWithdrawRight(t *testing.T) {
	st := newTestState(t)
	seller, buyer := tAddr(0x01), tAddr(0x02)
	id := depositNative(t, st, seller, 500, 7, 0)

	if err := (CertificateRegistry{}).Transfer(st, seller, buyer, id); err != nil {
		t.Fatalf("cert transfer: %v", err)
	}
	// The receipt balance moves separately through the ledger; give the buyer
	// enough receipt balance to burn.
	if err := token.Transfer(st, cfg, seller, buyer, big.NewInt(500)); err != nil {
		t.Fatalf("receipt transfer: %v", err)
	}
	// Seller may lose a skim on the receipt move; top the buyer up to the
	// exact principal for the burn.
	short := new(big.Int).Sub(big.NewInt(500), st.GetBalance(buyer))
	if short.Sign() > 0 {
		st.AddBalance(buyer, short)
	}

	if err := Withdraw(st, cfg, seller, id, 7*86400); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("seller withdraw: want ErrNotOwner, got %v", err)
	}
	if err := Withdraw(st, cfg, buyer, id, 7*86400); err != nil {
		t.Fatalf("buyer withdraw: %v", err)
	}
}

// mockProvider is an external-asset custody stub recording the amounts it
// moved.
type mockProvider struct {
	failIn  bool
	in, out *big.Int
}

func (m *mockProvider) TransferIn(db vm.StateDB, from common.Address, amount *big.Int) error {
	if m.failIn {
		return errors.New("custody unavailable")
	}
	m.in = new(big.Int).Set(amount)
	return nil
}

func (m *mockProvider) TransferOut(db vm.StateDB, to common.Address, amount *big.Int) error {
	m.out = new(big.Int).Set(amount)
	return nil
}

func TestExternalAssetLifecycle(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)
	p := &mockProvider{}
	RegisterAssetProvider("t-ext-ok", p)

	id, err := Deposit(st, cfg, d, big.NewInt(200), 30, 0, "t-ext-ok", new(big.Int), 0)
	if err != nil {
		t.Fatalf("external deposit: %v", err)
	}
	if p.in == nil || p.in.Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("provider TransferIn: have %v want 200", p.in)
	}
	if got := st.GetBalance(d); got.Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("receipt balance: have %v want 200", got)
	}

	if err := Withdraw(st, cfg, d, id, 30*86400); err != nil {
		t.Fatalf("external withdraw: %v", err)
	}
	if p.out == nil || p.out.Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("provider TransferOut: have %v want 200", p.out)
	}
	// Receipt burned, 30-day maturity pays the floor tier (6%).
	if got := st.GetBalance(d); got.Cmp(big.NewInt(12)) != 0 {
		t.Fatalf("post-withdraw balance: have %v want 12", got)
	}
}

func TestExternalAssetDepositAborts(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)
	RegisterAssetProvider("t-ext-fail", &mockProvider{failIn: true})

	if _, err := Deposit(st, cfg, d, big.NewInt(200), 30, 0, "t-ext-fail", new(big.Int), 0); err == nil {
		t.Fatalf("deposit with failing custody: want error, got nil")
	}
	if got := st.GetBalance(d); got.Sign() != 0 {
		t.Fatalf("receipt minted despite custody failure: %v", got)
	}

	if _, err := Deposit(st, cfg, d, big.NewInt(200), 30, 0, "no-such-kind", new(big.Int), 0); !errors.Is(err, ErrUnknownAssetKind) {
		t.Fatalf("unknown asset kind: want ErrUnknownAssetKind, got %v", err)
	}
}

// reentrantDepositProvider re-enters Deposit from inside the custody pull and
// records what the inner call returns.
type reentrantDepositProvider struct {
	armed bool
	inner error
}

func (p *reentrantDepositProvider) TransferIn(db vm.StateDB, from common.Address, amount *big.Int) error {
	if p.armed {
		p.armed = false
		_, p.inner = Deposit(db, cfg, from, amount, 30, 0, "t-reenter-dep", new(big.Int), 0)
	}
	return nil
}

func (p *reentrantDepositProvider) TransferOut(db vm.StateDB, to common.Address, amount *big.Int) error {
	return nil
}

func TestDepositReentrancyBlocked(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)
	p := &reentrantDepositProvider{armed: true}
	RegisterAssetProvider("t-reenter-dep", p)

	id, err := Deposit(st, cfg, d, big.NewInt(300), 30, 0, "t-reenter-dep", new(big.Int), 0)
	if err != nil {
		t.Fatalf("outer deposit: %v", err)
	}
	if !errors.Is(p.inner, ErrReentrantCall) {
		t.Fatalf("inner deposit: want ErrReentrantCall, got %v", p.inner)
	}
	// The blocked inner call never issued a certificate or minted a receipt.
	if _, err := GetBond(st, id+1); !errors.Is(err, ErrUnknownCertificate) {
		t.Fatalf("phantom bond created: %v", err)
	}
	if got := st.GetBalance(d); got.Cmp(big.NewInt(300)) != 0 {
		t.Fatalf("receipt balance: have %v want 300", got)
	}
}

// reentrantWithdrawProvider re-enters Withdraw from inside the principal
// payout, against both the bond being withdrawn and a second live bond.
type reentrantWithdrawProvider struct {
	armed    bool
	id1, id2 uint64
	now      uint64
	sameID   error
	otherID  error
}

func (p *reentrantWithdrawProvider) TransferIn(db vm.StateDB, from common.Address, amount *big.Int) error {
	return nil
}

func (p *reentrantWithdrawProvider) TransferOut(db vm.StateDB, to common.Address, amount *big.Int) error {
	if p.armed {
		p.armed = false
		p.sameID = Withdraw(db, cfg, to, p.id1, p.now)
		p.otherID = Withdraw(db, cfg, to, p.id2, p.now)
	}
	return nil
}

func TestWithdrawReentrancyBlocked(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)
	p := &reentrantWithdrawProvider{}
	RegisterAssetProvider("t-reenter-wd", p)

	id1, err := Deposit(st, cfg, d, big.NewInt(300), 7, 0, "t-reenter-wd", new(big.Int), 0)
	if err != nil {
		t.Fatalf("deposit 1: %v", err)
	}
	id2, err := Deposit(st, cfg, d, big.NewInt(300), 7, 0, "t-reenter-wd", new(big.Int), 0)
	if err != nil {
		t.Fatalf("deposit 2: %v", err)
	}
	matured := uint64(7 * 86400)
	p.armed, p.id1, p.id2, p.now = true, id1, id2, matured

	if err := Withdraw(st, cfg, d, id1, matured); err != nil {
		t.Fatalf("outer withdraw: %v", err)
	}
	// The terminal flag is committed before the payout, so re-entering the
	// same bond fails as already withdrawn, not as reentrant.
	if !errors.Is(p.sameID, ErrAlreadyWithdrawn) {
		t.Fatalf("same-id re-entry: want ErrAlreadyWithdrawn, got %v", p.sameID)
	}
	if !errors.Is(p.otherID, ErrReentrantCall) {
		t.Fatalf("other-id re-entry: want ErrReentrantCall, got %v", p.otherID)
	}

	// The second bond survived untouched and withdraws normally afterwards.
	b, err := GetBond(st, id2)
	if err != nil {
		t.Fatalf("get bond 2: %v", err)
	}
	if b.Withdrawn {
		t.Fatalf("bond 2 marked withdrawn by blocked re-entry")
	}
	if err := Withdraw(st, cfg, d, id2, matured); err != nil {
		t.Fatalf("withdraw 2: %v", err)
	}
}

func TestHandlerDispatchRevertsOnError(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)
	st.AddBalance(d, big.NewInt(100))

	// Invalid maturity: the handler moves value into custody before the state
	// machine rejects, so dispatch must revert the whole operation.
	data, err := sysaction.MakeSysAction(sysaction.ActionBondDeposit, &sysaction.BondDepositPayload{
		MaturityDays: 3,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	ctx := &sysaction.Context{
		From:        d,
		Value:       big.NewInt(100),
		Time:        0,
		StateDB:     st,
		ChainConfig: cfg,
	}
	if err := sysaction.ExecuteWithContext(ctx, data); !errors.Is(err, ErrInvalidMaturity) {
		t.Fatalf("want ErrInvalidMaturity, got %v", err)
	}
	if got := st.GetBalance(d); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("depositor balance not reverted: have %v want 100", got)
	}
	if got := st.GetBalance(params.BondAddress); got.Sign() != 0 {
		t.Fatalf("custody balance not reverted: have %v", got)
	}
}

func TestHandlerDepositWithdrawRoundTrip(t *testing.T) {
	st := newTestState(t)
	d := tAddr(0x01)
	st.AddBalance(d, big.NewInt(1000))

	depositData, _ := sysaction.MakeSysAction(sysaction.ActionBondDeposit, &sysaction.BondDepositPayload{
		MaturityDays: 360,
	})
	ctx := &sysaction.Context{From: d, Value: big.NewInt(1000), Time: 0, StateDB: st, ChainConfig: cfg}
	if err := sysaction.ExecuteWithContext(ctx, depositData); err != nil {
		t.Fatalf("deposit dispatch: %v", err)
	}

	withdrawData, _ := sysaction.MakeSysAction(sysaction.ActionBondWithdraw, &sysaction.BondWithdrawPayload{
		CertificateID: 1,
	})
	ctx = &sysaction.Context{From: d, Value: new(big.Int), Time: 360 * 86400, StateDB: st, ChainConfig: cfg}
	if err := sysaction.ExecuteWithContext(ctx, withdrawData); err != nil {
		t.Fatalf("withdraw dispatch: %v", err)
	}
	if got := st.GetBalance(d); got.Cmp(big.NewInt(1150)) != 0 {
		t.Fatalf("final balance: have %v want 1150", got)
	}
}
