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
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_AddAndLookup(t *testing.T) {
	// Test Case 1: registered keys report their type, absent keys report none

	// Setup
	reg := NewMemoryRegistry()
	secpKey := uint256.NewInt(1)
	passkey := uint256.NewInt(2)
	absent := uint256.NewInt(3)

	// Execute
	require.NoError(t, reg.Add(secpKey, KeyTypeSecp256k1))
	require.NoError(t, reg.Add(passkey, KeyTypeWebAuthn))

	// Assert
	assert.Equal(t, KeyTypeSecp256k1, reg.TypeOf(secpKey))
	assert.Equal(t, KeyTypeWebAuthn, reg.TypeOf(passkey))
	assert.Equal(t, KeyTypeNone, reg.TypeOf(absent))
	assert.True(t, reg.IsRegistered(secpKey))
	assert.False(t, reg.IsRegistered(absent))
	assert.Equal(t, 2, reg.Len())
}

func TestMemoryRegistry_RejectsSentinelAndUnknownTypes(t *testing.T) {
	// Test Case 2: sentinel and out-of-range types cannot be registered

	reg := NewMemoryRegistry()
	key := uint256.NewInt(7)

	assert.Error(t, reg.Add(key, KeyTypeNone))
	assert.Error(t, reg.Add(key, KeyType(99)))
	assert.Error(t, reg.Add(nil, KeyTypeSecp256k1))
	assert.Equal(t, 0, reg.Len())
}

func TestMemoryRegistry_Remove(t *testing.T) {
	// Test Case 3: removed keys become indistinguishable from never-added ones

	reg := NewMemoryRegistry()
	key := uint256.NewInt(42)
	require.NoError(t, reg.Add(key, KeyTypeSecp256k1))

	reg.Remove(key)

	assert.Equal(t, KeyTypeNone, reg.TypeOf(key))
	assert.False(t, reg.IsRegistered(key))

	// Removing again is a no-op
	reg.Remove(key)
	reg.Remove(nil)
	assert.Equal(t, 0, reg.Len())
}

func TestMemoryRegistry_UpdateType(t *testing.T) {
	// Test Case 4: re-adding a key overwrites its type (external rotation of
	// the owner's key kind)

	reg := NewMemoryRegistry()
	key := uint256.NewInt(5)

	require.NoError(t, reg.Add(key, KeyTypeSecp256k1))
	require.NoError(t, reg.Add(key, KeyTypeWebAuthn))

	assert.Equal(t, KeyTypeWebAuthn, reg.TypeOf(key))
	assert.Equal(t, 1, reg.Len())
}

func TestMemoryRegistry_ConcurrentAccess(t *testing.T) {
	// Test Case 5: concurrent readers and writers do not race

	reg := NewMemoryRegistry()
	var wg sync.WaitGroup
	for i := uint64(0); i < 32; i++ {
		wg.Add(2)
		key := uint256.NewInt(i)
		go func() {
			defer wg.Done()
			_ = reg.Add(key, KeyTypeSecp256k1)
		}()
		go func() {
			defer wg.Done()
			_ = reg.TypeOf(key)
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, reg.Len())
}

func TestKeyType_String(t *testing.T) {
	// Test Case 6: readable names for diagnostics

	assert.Equal(t, "none", KeyTypeNone.String())
	assert.Equal(t, "secp256k1", KeyTypeSecp256k1.String())
	assert.Equal(t, "webauthn", KeyTypeWebAuthn.String())
	assert.Equal(t, "keytype(9)", KeyType(9).String())
}
