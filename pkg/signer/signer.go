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
	"github.com/ethereum/go-ethereum/common"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/keytypes"
)

// WrappedSigner produces a complete wrapped signature over an application
// hash: the owner signs the domain's replay-safe envelope of the hash and
// the result is wire-encoded together with the keyspace key and the state
// proof for the owner's current key material.
type WrappedSigner interface {
	// SignWrapped signs appHash and returns the encoded SignatureWrapper.
	// stateProof is the directory proof for the signer's key material and
	// travels opaquely inside the wrapper.
	SignWrapped(appHash common.Hash, stateProof []byte) ([]byte, error)

	// Material returns the key material the produced signatures claim
	Material() keytypes.Material
}
