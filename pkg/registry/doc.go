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

// Package registry maps keyspace keys to their registered key type.
//
// A keyspace key is an opaque 256-bit identifier referencing an owner's
// entry in the external key directory. The registry records only which kind
// of key material stands behind the identifier; the material itself is
// resolved at verification time against the directory, never stored here.
//
//	reg := registry.NewMemoryRegistry()
//	err := reg.Add(key, registry.KeyTypeSecp256k1)
//
//	switch reg.TypeOf(key) {
//	case registry.KeyTypeNone:
//	    // not an owner, reject before any cryptographic work
//	case registry.KeyTypeSecp256k1:
//	    // address-identified owner (EOA or ERC-1271 contract)
//	case registry.KeyTypeWebAuthn:
//	    // P-256 passkey owner
//	}
//
// Verification code receives the registry as a read-only capability
// (the Registry interface); Add and Remove belong to the owner-management
// surface outside the authorization core.
package registry
