package sysaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidSysAction is returned when tx.Data cannot be decoded as a SysAction.
var ErrInvalidSysAction = errors.New("invalid system action payload")

// Decode parses a SysAction envelope from raw bytes (tx.Data). Unknown
// envelope fields are rejected so a mistyped field name surfaces at decode
// time instead of silently dropping an action parameter.
func Decode(data []byte) (*SysAction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidSysAction)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var sa SysAction
	if err := dec.Decode(&sa); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSysAction, err)
	}
	if sa.Action == "" {
		return nil, fmt.Errorf("%w: missing action field", ErrInvalidSysAction)
	}
	return &sa, nil
}

// DecodePayload unmarshals sa.Payload into dst. An empty payload leaves dst
// at its zero value.
func DecodePayload(sa *SysAction, dst interface{}) error {
	if len(sa.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(sa.Payload, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSysAction, err)
	}
	return nil
}

// MakeSysAction encodes an action envelope carrying the given payload into
// JSON bytes suitable for tx.Data.
func MakeSysAction(kind ActionKind, payload interface{}) ([]byte, error) {
	if kind == "" {
		return nil, fmt.Errorf("%w: empty action kind", ErrInvalidSysAction)
	}
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(&SysAction{Action: kind, Payload: raw})
}
