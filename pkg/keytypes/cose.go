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
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// COSE constants for an ES256 public key (RFC 9053).
const (
	coseKeyTypeEC2   = 2
	coseAlgES256     = -7
	coseCurveP256    = 1
	coseCoordinateLn = 32
)

// coseKey is the CBOR shape of a COSE_Key as delivered by authenticators
// during credential registration.
type coseKey struct {
	KeyType   int    `cbor:"1,keyasint"`
	Algorithm int    `cbor:"3,keyasint"`
	Curve     int    `cbor:"-1,keyasint"`
	X         []byte `cbor:"-2,keyasint"`
	Y         []byte `cbor:"-3,keyasint"`
}

// ParseCOSEKey decodes a CBOR COSE_Key into WebAuthn key material. Only
// EC2/ES256 keys on P-256 are accepted, which is what platform
// authenticators produce for passkeys.
func ParseCOSEKey(data []byte) (*WebAuthnMaterial, error) {
	var key coseKey
	if err := cbor.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("decode COSE key: %w", err)
	}

	if key.KeyType != coseKeyTypeEC2 {
		return nil, fmt.Errorf("unsupported COSE key type %d", key.KeyType)
	}
	if key.Algorithm != coseAlgES256 {
		return nil, fmt.Errorf("unsupported COSE algorithm %d", key.Algorithm)
	}
	if key.Curve != coseCurveP256 {
		return nil, fmt.Errorf("unsupported COSE curve %d", key.Curve)
	}
	if len(key.X) != coseCoordinateLn || len(key.Y) != coseCoordinateLn {
		return nil, fmt.Errorf("bad COSE coordinate length")
	}

	material := &WebAuthnMaterial{}
	material.X.SetBytes(key.X)
	material.Y.SetBytes(key.Y)
	return material, nil
}
