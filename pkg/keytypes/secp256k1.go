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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EOAVerifier verifies plain secp256k1 signatures by public-key recovery:
// the signature is valid when the recovered identity equals the claimed
// owner address.
type EOAVerifier struct{}

// Verify recovers the signer address from sig over digest and compares it
// against the claimed address material. Malformed signatures verify as
// false.
func (EOAVerifier) Verify(_ context.Context, material Material, digest common.Hash, sig Signature) (bool, error) {
	addr, ok := material.(AddressMaterial)
	if !ok {
		return false, nil
	}
	raw, ok := sig.(RawSignature)
	if !ok {
		return false, nil
	}

	recovered, ok := recoverAddress(digest, raw)
	if !ok {
		return false, nil
	}
	return recovered == addr.Address(), nil
}

// recoverAddress recovers the signer address from a 65-byte r||s||v
// signature. It accepts both the raw {0,1} and the legacy {27,28} recovery
// id conventions and rejects high-s signatures (malleability).
func recoverAddress(digest common.Hash, sig []byte) (common.Address, bool) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, false
	}

	v := sig[crypto.RecoveryIDOffset]
	if v == 27 || v == 28 {
		v -= 27
	}
	if v > 1 {
		return common.Address{}, false
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(v, r, s, true) {
		return common.Address{}, false
	}

	norm := make([]byte, crypto.SignatureLength)
	copy(norm, sig[:crypto.RecoveryIDOffset])
	norm[crypto.RecoveryIDOffset] = v

	pub, err := crypto.SigToPub(digest[:], norm)
	if err != nil {
		return common.Address{}, false
	}
	return crypto.PubkeyToAddress(*pub), true
}

// Secp256k1Verifier is the dispatcher for address-identified owners: first
// try plain recovery, then fall back to an ERC-1271 probe of the claimed
// address, so an owner may be either an EOA or a contract without the wire
// format distinguishing the two.
type Secp256k1Verifier struct {
	eoa      EOAVerifier
	contract *ERC1271Verifier
}

// NewSecp256k1Verifier creates the address-owner verifier. caller may be
// nil, in which case only EOA recovery is attempted.
func NewSecp256k1Verifier(caller ContractCaller) *Secp256k1Verifier {
	v := &Secp256k1Verifier{}
	if caller != nil {
		v.contract = NewERC1271Verifier(caller)
	}
	return v
}

// Verify tries EOA recovery first and, on mismatch, asks the claimed owner
// contract via ERC-1271.
func (v *Secp256k1Verifier) Verify(ctx context.Context, material Material, digest common.Hash, sig Signature) (bool, error) {
	ok, err := v.eoa.Verify(ctx, material, digest, sig)
	if err != nil || ok {
		return ok, err
	}
	if v.contract == nil {
		return false, nil
	}
	return v.contract.Verify(ctx, material, digest, sig)
}
