// Copyright (C) 2025 Keyspace-X Project
//
// This file is part of keyspace-auth-go.
//
// keyspace-auth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// keyspace-auth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with keyspace-auth-go.  If not, see <https://www.gnu.org/licenses/>.

package wrapper

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// WireVersion is the current version of the wrapper wire encoding. Decoders
// reject any other value.
const WireVersion = uint8(1)

// ErrMalformedWrapper is returned whenever caller-supplied signature bytes
// do not match the expected wire shape. Callers collapse it into the same
// rejection path as a cryptographically invalid signature.
var ErrMalformedWrapper = errors.New("malformed signature wrapper")

// SignatureWrapper is the outer envelope every account signature travels in:
// the keyspace key naming the owner and an opaque payload whose shape is
// determined by the owner's registered key type.
type SignatureWrapper struct {
	KeyspaceKey uint256.Int
	Payload     []byte
}

// Secp256k1Payload is the payload for address-identified owners. Owner is
// the claimed key material (EOA address or ERC-1271 contract), Signature a
// 64/65-byte r||s[||v] signature, StateProof the directory proof bytes.
type Secp256k1Payload struct {
	Owner      common.Address
	Signature  []byte
	StateProof []byte
}

// WebAuthnPayload is the payload for passkey owners: the claimed P-256
// public key, the raw assertion pieces, the assertion signature scalars and
// the directory proof bytes.
type WebAuthnPayload struct {
	X                 uint256.Int
	Y                 uint256.Int
	AuthenticatorData []byte
	ClientDataJSON    []byte
	R                 uint256.Int
	S                 uint256.Int
	StateProof        []byte
}

func mustType(t string) abi.Type {
	ty, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return ty
}

var (
	typeUint8   = mustType("uint8")
	typeUint256 = mustType("uint256")
	typeAddress = mustType("address")
	typeBytes   = mustType("bytes")
)

// uint256FromUnpacked converts an unpacked abi uint256 into a uint256.Int.
func uint256FromUnpacked(v interface{}) (*uint256.Int, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: bad uint256 field", ErrMalformedWrapper)
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: uint256 field out of range", ErrMalformedWrapper)
	}
	return u, nil
}

var wrapperArgs = abi.Arguments{
	{Name: "version", Type: typeUint8},
	{Name: "keyspaceKey", Type: typeUint256},
	{Name: "payload", Type: typeBytes},
}

var secp256k1PayloadArgs = abi.Arguments{
	{Name: "owner", Type: typeAddress},
	{Name: "signature", Type: typeBytes},
	{Name: "stateProof", Type: typeBytes},
}

var webAuthnPayloadArgs = abi.Arguments{
	{Name: "x", Type: typeUint256},
	{Name: "y", Type: typeUint256},
	{Name: "authenticatorData", Type: typeBytes},
	{Name: "clientDataJSON", Type: typeBytes},
	{Name: "r", Type: typeUint256},
	{Name: "s", Type: typeUint256},
	{Name: "stateProof", Type: typeBytes},
}

// Encode serializes a SignatureWrapper under the current wire version.
func Encode(w *SignatureWrapper) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("wrapper cannot be nil")
	}
	data, err := wrapperArgs.Pack(WireVersion, w.KeyspaceKey.ToBig(), w.Payload)
	if err != nil {
		return nil, fmt.Errorf("pack wrapper: %w", err)
	}
	return data, nil
}

// Decode parses the outer wrapper envelope. The payload stays opaque here;
// it must be decoded only after the keyspace key's registered type is known,
// never from a type tag in the data itself.
func Decode(data []byte) (*SignatureWrapper, error) {
	vals, err := wrapperArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWrapper, err)
	}

	version, ok := vals[0].(uint8)
	if !ok || version != WireVersion {
		return nil, fmt.Errorf("%w: unsupported wire version", ErrMalformedWrapper)
	}
	key, err := uint256FromUnpacked(vals[1])
	if err != nil {
		return nil, err
	}
	payload, ok := vals[2].([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: bad payload field", ErrMalformedWrapper)
	}

	w := &SignatureWrapper{Payload: payload}
	w.KeyspaceKey.Set(key)
	return w, nil
}

// EncodeSecp256k1Payload serializes an address-owner payload.
func EncodeSecp256k1Payload(p *Secp256k1Payload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("payload cannot be nil")
	}
	data, err := secp256k1PayloadArgs.Pack(p.Owner, p.Signature, p.StateProof)
	if err != nil {
		return nil, fmt.Errorf("pack secp256k1 payload: %w", err)
	}
	return data, nil
}

// DecodeSecp256k1Payload parses a payload whose keyspace key is registered
// as KeyTypeSecp256k1.
func DecodeSecp256k1Payload(data []byte) (*Secp256k1Payload, error) {
	vals, err := secp256k1PayloadArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWrapper, err)
	}
	owner, ok := vals[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("%w: bad owner field", ErrMalformedWrapper)
	}
	sig, ok := vals[1].([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: bad signature field", ErrMalformedWrapper)
	}
	proof, ok := vals[2].([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: bad state proof field", ErrMalformedWrapper)
	}
	return &Secp256k1Payload{Owner: owner, Signature: sig, StateProof: proof}, nil
}

// EncodeWebAuthnPayload serializes a passkey-owner payload.
func EncodeWebAuthnPayload(p *WebAuthnPayload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("payload cannot be nil")
	}
	data, err := webAuthnPayloadArgs.Pack(
		p.X.ToBig(), p.Y.ToBig(),
		p.AuthenticatorData, p.ClientDataJSON,
		p.R.ToBig(), p.S.ToBig(),
		p.StateProof,
	)
	if err != nil {
		return nil, fmt.Errorf("pack webauthn payload: %w", err)
	}
	return data, nil
}

// DecodeWebAuthnPayload parses a payload whose keyspace key is registered
// as KeyTypeWebAuthn.
func DecodeWebAuthnPayload(data []byte) (*WebAuthnPayload, error) {
	vals, err := webAuthnPayloadArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWrapper, err)
	}

	p := &WebAuthnPayload{}
	for i, dst := range []*uint256.Int{&p.X, &p.Y} {
		v, err := uint256FromUnpacked(vals[i])
		if err != nil {
			return nil, err
		}
		dst.Set(v)
	}
	var ok bool
	if p.AuthenticatorData, ok = vals[2].([]byte); !ok {
		return nil, fmt.Errorf("%w: bad authenticator data field", ErrMalformedWrapper)
	}
	if p.ClientDataJSON, ok = vals[3].([]byte); !ok {
		return nil, fmt.Errorf("%w: bad client data field", ErrMalformedWrapper)
	}
	for i, dst := range []*uint256.Int{&p.R, &p.S} {
		v, err := uint256FromUnpacked(vals[4+i])
		if err != nil {
			return nil, err
		}
		dst.Set(v)
	}
	if p.StateProof, ok = vals[6].([]byte); !ok {
		return nil, fmt.Errorf("%w: bad state proof field", ErrMalformedWrapper)
	}
	return p, nil
}
