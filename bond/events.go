package bond

import (
	"encoding/json"
	"math/big"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/types"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

var (
	TopicBondDeposited          = crypto.Keccak256Hash([]byte("BondDeposited"))
	TopicBondWithdrawn          = crypto.Keccak256Hash([]byte("BondWithdrawn"))
	TopicCertificateTransferred = crypto.Keccak256Hash([]byte("CertificateTransferred"))
)

// DepositedEvent is the audit payload of a bond deposit.
type DepositedEvent struct {
	CertificateID   uint64         `json:"certificateId"`
	Depositor       common.Address `json:"depositor"`
	Principal       *big.Int       `json:"principal"`
	MaturityDays    uint64         `json:"maturityDays"`
	AssetKind       string         `json:"assetKind"`
	BondFeeBps      uint64         `json:"bondFeeBps"`
	RefractionIndex string         `json:"refractionIndex"`
	StartTime       uint64         `json:"startTime"`
}

// WithdrawnEvent is the audit payload of a bond withdrawal.
type WithdrawnEvent struct {
	CertificateID uint64         `json:"certificateId"`
	Owner         common.Address `json:"owner"`
	Principal     *big.Int       `json:"principal"`
	Yield         *big.Int       `json:"yield"`
	MaturityDays  uint64         `json:"maturityDays"`
}

// CertificateTransferredEvent records an ownership move.
type CertificateTransferredEvent struct {
	CertificateID uint64         `json:"certificateId"`
	From          common.Address `json:"from"`
	To            common.Address `json:"to"`
}

func emit(db vm.StateDB, topic common.Hash, payload interface{}) {
	data, _ := json.Marshal(payload)
	db.AddLog(&types.Log{
		Address: params.BondAddress,
		Topics:  []common.Hash{topic},
		Data:    data,
	})
}

func emitDeposited(db vm.StateDB, id uint64, depositor common.Address, b *Bond) {
	emit(db, TopicBondDeposited, &DepositedEvent{
		CertificateID:   id,
		Depositor:       depositor,
		Principal:       b.Principal,
		MaturityDays:    b.MaturityDays,
		AssetKind:       b.AssetKind,
		BondFeeBps:      b.BondFeeBps,
		RefractionIndex: b.RefractionIndex.String(),
		StartTime:       b.StartTime,
	})
}

func emitWithdrawn(db vm.StateDB, id uint64, owner common.Address, b *Bond, yield *big.Int) {
	emit(db, TopicBondWithdrawn, &WithdrawnEvent{
		CertificateID: id,
		Owner:         owner,
		Principal:     b.Principal,
		Yield:         yield,
		MaturityDays:  b.MaturityDays,
	})
}

func emitCertificateTransferred(db vm.StateDB, id uint64, from, to common.Address) {
	emit(db, TopicCertificateTransferred, &CertificateTransferredEvent{
		CertificateID: id,
		From:          from,
		To:            to,
	})
}
