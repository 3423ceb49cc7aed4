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

package registry

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
)

// KeyType tags the kind of cryptographic material a keyspace key resolves to.
type KeyType uint8

const (
	// KeyTypeNone is the sentinel for an unregistered keyspace key
	KeyTypeNone KeyType = iota

	// KeyTypeSecp256k1 marks an owner identified by an Ethereum address,
	// either an EOA or an ERC-1271 contract
	KeyTypeSecp256k1

	// KeyTypeWebAuthn marks an owner identified by a P-256 passkey
	KeyTypeWebAuthn
)

// String returns a human-readable name for the key type.
func (k KeyType) String() string {
	switch k {
	case KeyTypeNone:
		return "none"
	case KeyTypeSecp256k1:
		return "secp256k1"
	case KeyTypeWebAuthn:
		return "webauthn"
	default:
		return fmt.Sprintf("keytype(%d)", uint8(k))
	}
}

// Registry is the read capability the authorization core holds on the owner
// set. Mutation happens in an owner-management component outside this core;
// verification only ever asks which type, if any, a keyspace key carries.
type Registry interface {
	// TypeOf returns the registered key type for the keyspace key, or
	// KeyTypeNone if the key is not an owner
	TypeOf(key *uint256.Int) KeyType

	// IsRegistered reports whether the keyspace key is a current owner
	IsRegistered(key *uint256.Int) bool
}

// MemoryRegistry is an in-memory Registry safe for concurrent use. The
// owner-management side mutates it through Add/Remove while verification
// reads it through the Registry interface.
type MemoryRegistry struct {
	mu     sync.RWMutex
	owners map[uint256.Int]KeyType
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{owners: make(map[uint256.Int]KeyType)}
}

// Add registers a keyspace key with the given type. Registering the sentinel
// type is rejected; an unregistered key must stay indistinguishable from one
// that was never added.
func (r *MemoryRegistry) Add(key *uint256.Int, keyType KeyType) error {
	if key == nil {
		return fmt.Errorf("keyspace key cannot be nil")
	}
	if keyType == KeyTypeNone {
		return fmt.Errorf("cannot register sentinel key type")
	}
	if keyType != KeyTypeSecp256k1 && keyType != KeyTypeWebAuthn {
		return fmt.Errorf("unknown key type %d", uint8(keyType))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[*key] = keyType
	return nil
}

// Remove deregisters a keyspace key. Removing an absent key is a no-op.
func (r *MemoryRegistry) Remove(key *uint256.Int) {
	if key == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.owners, *key)
}

// TypeOf returns the registered key type, or KeyTypeNone.
func (r *MemoryRegistry) TypeOf(key *uint256.Int) KeyType {
	if key == nil {
		return KeyTypeNone
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owners[*key]
}

// IsRegistered reports whether the keyspace key is a current owner.
func (r *MemoryRegistry) IsRegistered(key *uint256.Int) bool {
	return r.TypeOf(key) != KeyTypeNone
}

// Len returns the number of registered owners.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}
