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

// Package eip712 implements the account's EIP-712 signing domain and the
// replay-safe hash envelope.
//
// # Signing Domain
//
// The account signs under the fixed domain ("Coinbase Smart Wallet", "1")
// bound to the live chain id and the account's own address:
//
//	domain, err := eip712.NewDomain(chainID, accountAddr)
//	record := domain.EIP712Domain() // EIP-5267 view, fields = 0x0f
//	sep, err := domain.Separator()
//
// # Replay-Safe Hash
//
// Owner signatures are never computed over a raw application hash. The hash
// is first wrapped in a single-field typed message bound to the domain:
//
//	CoinbaseSmartWalletMessage(bytes32 hash)
//
// so a signature valid for one (account, chain) pair cannot be replayed
// against another:
//
//	safe, err := domain.ReplaySafeHash(appHash)
//
// Any external structured-signing tool computing the standard EIP-712 digest
// over the same domain and message produces the same value, which is what
// makes externally produced owner signatures verifiable by the account.
//
// # Caching
//
// Separator and ReplaySafeHash recompute the domain hash on every call.
// The chain id is part of the digest; caching across a potential fork
// boundary would silently reintroduce cross-chain replay.
package eip712
