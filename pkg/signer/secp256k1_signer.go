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

package signer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/eip712"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/keytypes"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/wrapper"
)

// Secp256k1Signer signs with a secp256k1 private key on behalf of an
// address-identified owner.
type Secp256k1Signer struct {
	key         *ecdsa.PrivateKey
	keyspaceKey uint256.Int
	domain      *eip712.Domain
}

// NewSecp256k1Signer creates a signer for the given owner key and keyspace
// key under the account's domain.
func NewSecp256k1Signer(key *ecdsa.PrivateKey, keyspaceKey *uint256.Int, domain *eip712.Domain) (*Secp256k1Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}
	if keyspaceKey == nil {
		return nil, fmt.Errorf("keyspace key cannot be nil")
	}
	if domain == nil {
		return nil, fmt.Errorf("domain cannot be nil")
	}
	s := &Secp256k1Signer{key: key, domain: domain}
	s.keyspaceKey.Set(keyspaceKey)
	return s, nil
}

// Address returns the owner address signatures will recover to.
func (s *Secp256k1Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// Material returns the address material the signatures claim.
func (s *Secp256k1Signer) Material() keytypes.Material {
	return keytypes.AddressMaterial(s.Address())
}

// SignWrapped signs the replay-safe envelope of appHash and encodes the
// full signature wrapper.
func (s *Secp256k1Signer) SignWrapped(appHash common.Hash, stateProof []byte) ([]byte, error) {
	digest, err := s.domain.ReplaySafeHash(appHash)
	if err != nil {
		return nil, fmt.Errorf("compute replay-safe hash: %w", err)
	}

	sig, err := crypto.Sign(digest[:], s.key)
	if err != nil {
		return nil, fmt.Errorf("sign digest: %w", err)
	}

	payload, err := wrapper.EncodeSecp256k1Payload(&wrapper.Secp256k1Payload{
		Owner:      s.Address(),
		Signature:  sig,
		StateProof: stateProof,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	w := &wrapper.SignatureWrapper{Payload: payload}
	w.KeyspaceKey.Set(&s.keyspaceKey)
	return wrapper.Encode(w)
}
