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

// Package oracle is the client boundary to the external key directory and
// its state-proof verifier.
//
// The directory binds keyspace keys to current key material and summarizes
// the whole binding set in a single commitment, its root. The verifier
// checks proofs that specific material is bound to a specific key under a
// stated root. This package consumes both as opaque read-only services:
//
//	cli, err := oracle.NewClient(ethClient, directoryAddr, verifierAddr)
//
//	root, err := cli.CurrentRoot(ctx)          // directory.root()
//	ok, err := cli.Confirm(ctx, root, key,     // verifier.verify(...)
//	    materialCommit, proof)
//
// # Error Contract
//
// The two outcomes are deliberately different in kind:
//
//   - Confirm returning false is normal — a stale or forged proof.
//   - Any call error (unreachable endpoint, directory revert, malformed
//     return) is an infrastructure fault and propagates to the caller
//     unmodified. Downgrading it to false would disguise an availability
//     problem as a forged signature.
//
// # Freshness
//
// Nothing here caches: the directory may rotate between any two calls, so
// every verification attempt fetches a fresh root. Staleness is a
// correctness bug in this system, not a performance trade-off.
//
// Config/LoadConfig provide YAML wiring for the endpoint and contract
// addresses:
//
//	rpcEndpoint: https://mainnet.base.org
//	directoryAddress: "0x..."
//	verifierAddress: "0x..."
//	timeout: 10s
package oracle
