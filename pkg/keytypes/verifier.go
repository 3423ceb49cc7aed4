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

package keytypes

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Material is key material claimed for one owner key. It is caller-supplied
// and untrusted until the state-proof oracle confirms it is the material
// currently bound to the owner's keyspace key.
type Material interface {
	// Commitment returns the 32-byte commitment the proof verifier checks
	// against the directory
	Commitment() common.Hash
}

// AddressMaterial identifies an owner by Ethereum address: an EOA whose key
// recovers to the address, or an ERC-1271 contract deployed at it.
type AddressMaterial common.Address

// Commitment is keccak256 of the address left-padded to 32 bytes.
func (m AddressMaterial) Commitment() common.Hash {
	return crypto.Keccak256Hash(common.LeftPadBytes(common.Address(m).Bytes(), 32))
}

// Address returns the claimed owner address.
func (m AddressMaterial) Address() common.Address {
	return common.Address(m)
}

// WebAuthnMaterial identifies an owner by a P-256 passkey public key.
type WebAuthnMaterial struct {
	X uint256.Int
	Y uint256.Int
}

// Commitment is keccak256 of the x and y coordinates, each 32 bytes.
func (m *WebAuthnMaterial) Commitment() common.Hash {
	x := m.X.Bytes32()
	y := m.Y.Bytes32()
	return crypto.Keccak256Hash(x[:], y[:])
}

// Signature is the closed set of raw signature shapes owners can produce.
type Signature interface {
	isSignature()
}

// RawSignature is a 65-byte r||s||v secp256k1 signature (v in {0,1,27,28}).
type RawSignature []byte

func (RawSignature) isSignature() {}

// WebAuthnAssertion carries the pieces of a platform-authenticator
// assertion: the authenticator data, the client data JSON whose challenge
// binds the signed message, and the P-256 signature scalars.
type WebAuthnAssertion struct {
	AuthenticatorData []byte
	ClientDataJSON    []byte
	R                 uint256.Int
	S                 uint256.Int
}

func (*WebAuthnAssertion) isSignature() {}

// Verifier is the single capability all key types implement: check a raw
// signature against claimed key material and a message digest.
//
// Implementations never return an error for attacker-controlled malformed
// input — wrong lengths, bad recovery ids, garbage assertions and material
// of the wrong variant all verify as false. The error return is reserved
// for faults outside the caller's influence.
type Verifier interface {
	Verify(ctx context.Context, material Material, digest common.Hash, sig Signature) (bool, error)
}
