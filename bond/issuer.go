package bond

import (
	"encoding/binary"

	"github.com/prism-network/gprism/common"
	"github.com/prism-network/gprism/core/vm"
	"github.com/prism-network/gprism/crypto"
	"github.com/prism-network/gprism/params"
)

// CertificateIssuer is the collaborator that mints unique bond certificates
// and tracks their ownership. The registry below is the default; the bond
// registry trusts whichever issuer is installed.
type CertificateIssuer interface {
	// Issue mints a new certificate bound to owner and returns its id.
	Issue(db vm.StateDB, owner common.Address) (uint64, error)

	// OwnerOf returns the current owner of a certificate.
	OwnerOf(db vm.StateDB, id uint64) (common.Address, error)
}

// CertificateRegistry is the slot-backed default issuer, storing an id
// counter and per-certificate ownership at params.CertificateAddress.
// Certificate ids start at 1; id 0 is never issued.
type CertificateRegistry struct{}

var certNextIDSlot = crypto.Keccak256Hash([]byte("gprism.cert.nextID"))

func certOwnerSlot(id uint64) common.Hash {
	var idb [8]byte
	binary.BigEndian.PutUint64(idb[:], id)
	return crypto.Keccak256Hash(append([]byte("gprism.cert.owner"), idb[:]...))
}

// Issue mints the next certificate id to owner.
func (CertificateRegistry) Issue(db vm.StateDB, owner common.Address) (uint64, error) {
	raw := db.GetState(params.CertificateAddress, certNextIDSlot)
	id := binary.BigEndian.Uint64(raw[24:]) + 1

	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], id)
	db.SetState(params.CertificateAddress, certNextIDSlot, word)
	db.SetState(params.CertificateAddress, certOwnerSlot(id), owner.Hash())
	return id, nil
}

// OwnerOf returns the current owner of id, or ErrUnknownCertificate.
func (CertificateRegistry) OwnerOf(db vm.StateDB, id uint64) (common.Address, error) {
	raw := db.GetState(params.CertificateAddress, certOwnerSlot(id))
	owner := common.BytesToAddress(raw.Bytes())
	if owner == (common.Address{}) {
		return common.Address{}, ErrUnknownCertificate
	}
	return owner, nil
}

// Transfer moves certificate ownership from caller to `to`. The bond bound to
// the certificate follows its owner: withdrawal rights move with it.
func (r CertificateRegistry) Transfer(db vm.StateDB, caller, to common.Address, id uint64) error {
	owner, err := r.OwnerOf(db, id)
	if err != nil {
		return err
	}
	if owner != caller {
		return ErrNotOwner
	}
	if to == (common.Address{}) {
		return ErrUnknownCertificate
	}
	db.SetState(params.CertificateAddress, certOwnerSlot(id), to.Hash())
	emitCertificateTransferred(db, id, caller, to)
	return nil
}

// DefaultIssuer is the issuer consulted by deposits and withdrawals unless a
// test installs its own.
var DefaultIssuer CertificateIssuer = CertificateRegistry{}
