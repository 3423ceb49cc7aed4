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

// Package account implements the signature-authorization orchestrator of a
// keyspace-backed multi-owner account.
//
// # Authorization Flow
//
// IsValidSignature walks a fixed state machine:
//
//	Decode → TypeLookup → LocalSigCheck → DirectoryRootFetch → ProofConfirm → Decide
//
//	auth, err := account.NewAuthorizer(domain, reg, oracleClient,
//	    account.WithContractCaller(ethClient))
//
//	magic, err := auth.IsValidSignature(ctx, appHash, sig)
//	switch {
//	case err != nil:
//	    // directory or proof verifier unavailable; fatal to this attempt
//	case magic == account.MagicValue:
//	    // authorized
//	default:
//	    // rejected (magic == account.FailureMagic)
//	}
//
// # Ordering Invariant
//
// The local cryptographic check runs strictly before the directory root is
// fetched or the proof verifier consulted. This is a security contract,
// not an optimization: callers may rely on the external services never
// seeing a request for a signature that fails locally. The sequential
// early returns in IsValidSignature enforce it structurally, and the
// package tests assert the absence of oracle calls, not just the final
// verdict.
//
// # Failure Classes
//
// Expected rejections (malformed wrapper, unregistered keyspace key, bad
// signature, bad proof) all collapse into FailureMagic with a nil error so
// none of them is distinguishable to the caller. Infrastructure faults
// from the oracle propagate as errors and are never downgraded to a
// rejection, which would disguise an availability problem as a forged
// signature.
//
// # Freshness
//
// Nothing is cached between calls: the directory root is re-read and the
// domain separator recomputed on every attempt, because both the key
// directory and the chain context can change between any two invocations.
package account
