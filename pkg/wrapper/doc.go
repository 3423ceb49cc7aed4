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

// Package wrapper implements the versioned wire encoding of account
// signatures.
//
// # Wire Format
//
// All layouts are standard ABI encodings. The outer envelope is
//
//	SignatureWrapper = abi(uint8 version, uint256 keyspaceKey, bytes payload)
//
// with version fixed at 1. The payload layout depends on the key type the
// keyspace key is registered under:
//
//	secp256k1: abi(address owner, bytes signature, bytes stateProof)
//	webauthn:  abi(uint256 x, uint256 y,
//	               bytes authenticatorData, bytes clientDataJSON,
//	               uint256 r, uint256 s, bytes stateProof)
//
// # Trust Boundary
//
// The codec never trusts a type tag embedded in caller-supplied bytes.
// Decode parses only the envelope; the payload is decoded by
// DecodeSecp256k1Payload or DecodeWebAuthnPayload after the owner registry
// has answered which type the keyspace key carries.
//
// Every shape violation — truncated data, bad inner offsets, out-of-range
// fields, unknown version — surfaces as ErrMalformedWrapper:
//
//	w, err := wrapper.Decode(sig)
//	if errors.Is(err, wrapper.ErrMalformedWrapper) {
//	    // same rejection path as an invalid signature
//	}
package wrapper
