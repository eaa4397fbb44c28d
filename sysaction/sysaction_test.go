package sysaction

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/state"
	"github.com/prism-network/gprism/params"
	"github.com/prism-network/gprism/prismdb/memorydb"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{},
		[]byte("not json"),
		[]byte(`{"payload":{}}`),                 // missing action
		[]byte(`{"action":"X","payloda":{}}`),    // mistyped envelope field
		[]byte(`{"action":"X","certificate":1}`), // parameter outside the payload
	} {
		if _, err := Decode(data); !errors.Is(err, ErrInvalidSysAction) {
			t.Fatalf("Decode(%q): want ErrInvalidSysAction, got %v", data, err)
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	data, err := MakeSysAction(ActionBondDeposit, &BondDepositPayload{
		MaturityDays: 90,
		BondFeeBps:   25,
		AssetKind:    "native",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	sa, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sa.Action != ActionBondDeposit {
		t.Fatalf("action: have %q want %q", sa.Action, ActionBondDeposit)
	}
	var p BondDepositPayload
	if err := DecodePayload(sa, &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if p.MaturityDays != 90 || p.BondFeeBps != 25 || p.AssetKind != "native" {
		t.Fatalf("payload mismatch: %+v", p)
	}
}

func TestMakeSysActionEmptyKind(t *testing.T) {
	if _, err := MakeSysAction("", nil); !errors.Is(err, ErrInvalidSysAction) {
		t.Fatalf("want ErrInvalidSysAction, got %v", err)
	}
}

func TestDecodePayloadTypeMismatch(t *testing.T) {
	sa, err := Decode([]byte(`{"action":"BOND_WITHDRAW","payload":{"certificate_id":"not-a-number"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var p BondWithdrawPayload
	if err := DecodePayload(sa, &p); !errors.Is(err, ErrInvalidSysAction) {
		t.Fatalf("want ErrInvalidSysAction, got %v", err)
	}
}

func TestMakeSysActionNilPayload(t *testing.T) {
	data, err := MakeSysAction(ActionDistributeFees, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	sa, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sa.Action != ActionDistributeFees || len(sa.Payload) != 0 {
		t.Fatalf("envelope: %+v", sa)
	}
}

// failingHandler accepts a private test kind, mutates state, then errors.
type failingHandler struct{}

const testFailKind ActionKind = "TEST_FAIL"

func (failingHandler) CanHandle(kind ActionKind) bool { return kind == testFailKind }

func (failingHandler) Handle(ctx *Context, sa *SysAction) error {
	ctx.StateDB.AddBalance(common.Address{0xfe}, big.NewInt(1))
	return errors.New("handler exploded")
}

func TestDispatchRevertsFailedHandler(t *testing.T) {
	DefaultRegistry.Register(failingHandler{})

	st := state.New(memorydb.New())
	data, err := MakeSysAction(testFailKind, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	ctx := &Context{
		From:        common.Address{0x01},
		Value:       new(big.Int),
		StateDB:     st,
		ChainConfig: params.TestChainConfig,
	}
	if err := ExecuteWithContext(ctx, data); err == nil {
		t.Fatalf("want handler error, got nil")
	}
	if got := st.GetBalance(common.Address{0xfe}); got.Sign() != 0 {
		t.Fatalf("state not reverted: %v", got)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	st := state.New(memorydb.New())
	data, err := MakeSysAction(ActionKind("NO_SUCH_ACTION"), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	ctx := &Context{StateDB: st, ChainConfig: params.TestChainConfig}
	err = ExecuteWithContext(ctx, data)
	if err == nil || !strings.Contains(err.Error(), "unknown system action") {
		t.Fatalf("want unknown-action error, got %v", err)
	}
}
