// Package sysaction implements the Prism system action protocol.
//
// System actions are special transactions sent to params.SystemActionAddress.
// Their tx.Data field is a JSON-encoded SysAction message. No interpreter is
// invoked; instead the state processor calls sysaction.Execute() which
// dispatches to the appropriate handler (token, bond, vesting, distributor).
package sysaction

import "encoding/json"

// ActionKind identifies the type of system action.
type ActionKind string

const (
	// Fee-bearing ledger administration
	ActionTokenSetFee    ActionKind = "TOKEN_SET_FEE"
	ActionTokenSetExempt ActionKind = "TOKEN_SET_EXEMPT"

	// Bond lifecycle
	ActionBondDeposit  ActionKind = "BOND_DEPOSIT"
	ActionBondWithdraw ActionKind = "BOND_WITHDRAW"
	ActionCertTransfer ActionKind = "CERT_TRANSFER"

	// Vesting-scheduled supply expansion
	ActionMintAndVest ActionKind = "MINT_AND_VEST"
	ActionClaimVested ActionKind = "CLAIM_VESTED"

	// Epoch fee distribution
	ActionDistributeFees ActionKind = "DISTRIBUTE_FEES"
)

// SysAction is the top-level envelope stored in tx.Data for system action txs.
type SysAction struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SetFeePayload is the payload for TOKEN_SET_FEE.
type SetFeePayload struct {
	Percent uint64 `json:"percent"`
}

// SetExemptPayload is the payload for TOKEN_SET_EXEMPT.
type SetExemptPayload struct {
	Account string `json:"account"`
	Exempt  bool   `json:"exempt"`
}

// BondDepositPayload is the payload for BOND_DEPOSIT. For native-asset bonds
// the principal is the value attached to the transaction and Principal must be
// empty; for external-asset bonds Principal is a decimal string and the asset
// provider pulls it into custody.
type BondDepositPayload struct {
	MaturityDays uint64 `json:"maturity_days"`
	BondFeeBps   uint64 `json:"bond_fee_bps"`
	AssetKind    string `json:"asset_kind"` // "native" or an external asset reference
	Principal    string `json:"principal,omitempty"`
}

// BondWithdrawPayload is the payload for BOND_WITHDRAW.
type BondWithdrawPayload struct {
	CertificateID uint64 `json:"certificate_id"`
}

// CertTransferPayload is the payload for CERT_TRANSFER.
type CertTransferPayload struct {
	CertificateID uint64 `json:"certificate_id"`
	To            string `json:"to"`
}
