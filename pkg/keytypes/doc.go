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

// Package keytypes implements the per-key-type signature verifiers behind
// one shared capability.
//
// # One Capability, Three Implementations
//
// Every key type answers the same question through the Verifier interface:
// does this raw signature, for this claimed key material, cover this digest?
//
//   - EOAVerifier: secp256k1 public-key recovery, identity compared against
//     the claimed address.
//   - ERC1271Verifier: delegates to isValidSignature(bytes32,bytes) on the
//     claimed owner contract and checks for the 0x1626ba7e magic value.
//   - WebAuthnVerifier: P-256 assertion verification with the digest bound
//     through the base64url challenge in the client data JSON.
//
// Secp256k1Verifier combines the first two — recovery first, contract probe
// on mismatch — so an address-identified owner may be an EOA or a contract
// without the wire format telling them apart.
//
// # Failure Discipline
//
// Verifiers never return an error for malformed, attacker-controlled input:
// wrong signature lengths, bad recovery ids, garbage client data, off-curve
// public keys and reverting owner contracts all verify as false. Rejections
// stay indistinguishable from each other to the caller.
//
// # Key Material
//
// Material values are claimed by the caller inside the signature wrapper
// and are not trusted here; the authorization orchestrator separately asks
// the state-proof oracle to confirm material.Commitment() is the material
// currently bound to the owner's keyspace key.
//
// ParseCOSEKey converts a credential's CBOR COSE_Key (as emitted by
// platform authenticators at registration) into WebAuthnMaterial.
package keytypes
