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

// Package signer produces wrapped account signatures, the counterpart to
// the verification side in pkg/account.
//
// Signers never sign the raw application hash. They sign the domain's
// replay-safe envelope of it and wire-encode the result together with the
// owner's keyspace key and a caller-supplied state proof:
//
//	s, err := signer.NewSecp256k1Signer(ownerKey, keyspaceKey, domain)
//	sig, err := s.SignWrapped(appHash, stateProof)
//	// sig is ready for account.IsValidSignature(ctx, appHash, sig)
//
// WebAuthnSigner is a software passkey producing complete assertions
// (authenticator data, client data JSON with the digest as challenge, and
// a low-s P-256 signature). It exists for tests, examples and development;
// real passkeys live in platform authenticators, which produce the same
// byte layout this package emits.
package signer
