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

package main

import (
	"context"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/account"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/eip712"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/registry"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/signer"
)

// memoryDirectory simulates a key directory: it tracks a root and the
// material commitment bound to each keyspace key, and confirms a proof
// exactly when the claimed binding matches the current state.
type memoryDirectory struct {
	root     common.Hash
	bindings map[uint256.Int]common.Hash
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{
		root:     crypto.Keccak256Hash([]byte("genesis")),
		bindings: make(map[uint256.Int]common.Hash),
	}
}

func (d *memoryDirectory) bind(key *uint256.Int, commitment common.Hash) {
	d.bindings[*key] = commitment
	kb := key.Bytes32()
	d.root = crypto.Keccak256Hash(d.root[:], kb[:], commitment[:])
}

func (d *memoryDirectory) CurrentRoot(ctx context.Context) (common.Hash, error) {
	return d.root, nil
}

func (d *memoryDirectory) Confirm(ctx context.Context, root common.Hash, key *uint256.Int, materialCommit common.Hash, proof []byte) (bool, error) {
	if root != d.root {
		return false, nil
	}
	bound, ok := d.bindings[*key]
	return ok && bound == materialCommit, nil
}

// This example demonstrates the full authorization flow against an
// in-memory key directory: a secp256k1 owner and a software passkey owner
// both sign, and a forged signature is rejected.
func main() {
	fmt.Println("=== Local Verification Example ===")

	ctx := context.Background()

	// Step 1: Create the account's signing domain (Base mainnet)
	fmt.Println("Step 1: Creating account domain...")
	accountAddr := common.HexToAddress("0x4bbeEB066eD09B7AEd07bF39EEe0460DFa261520")
	domain, err := eip712.NewDomain(big.NewInt(8453), accountAddr)
	if err != nil {
		log.Fatal(err)
	}
	sep, err := domain.Separator()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  Account:          %s\n", accountAddr.Hex())
	fmt.Printf("  Domain separator: %s\n\n", sep.Hex())

	// Step 2: Register two owners under distinct keyspace keys
	fmt.Println("Step 2: Registering owners...")
	reg := registry.NewMemoryRegistry()
	directory := newMemoryDirectory()

	secpKey := uint256.NewInt(1)
	priv, err := crypto.GenerateKey()
	if err != nil {
		log.Fatal(err)
	}
	secpOwner, err := signer.NewSecp256k1Signer(priv, secpKey, domain)
	if err != nil {
		log.Fatal(err)
	}
	if err := reg.Add(secpKey, registry.KeyTypeSecp256k1); err != nil {
		log.Fatal(err)
	}
	directory.bind(secpKey, secpOwner.Material().Commitment())
	fmt.Printf("  ✓ secp256k1 owner %s at keyspace key %s\n", secpOwner.Address().Hex(), secpKey)

	passkeyKey := uint256.NewInt(2)
	passkeyOwner, err := signer.NewWebAuthnSigner(nil, passkeyKey, domain, "wallet.example", "https://wallet.example")
	if err != nil {
		log.Fatal(err)
	}
	if err := reg.Add(passkeyKey, registry.KeyTypeWebAuthn); err != nil {
		log.Fatal(err)
	}
	directory.bind(passkeyKey, passkeyOwner.Material().Commitment())
	fmt.Printf("  ✓ passkey owner at keyspace key %s\n\n", passkeyKey)

	// Step 3: Build the authorizer
	fmt.Println("Step 3: Building authorizer...")
	auth, err := account.NewAuthorizer(domain, reg, directory)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("  ✓ Authorizer ready")

	appHash := crypto.Keccak256Hash([]byte("transfer 1 ETH to alice"))
	fmt.Printf("\n  Application hash: %s\n\n", appHash.Hex())

	// Step 4: secp256k1 owner authorizes
	fmt.Println("Step 4: secp256k1 owner signs...")
	sig, err := secpOwner.SignWrapped(appHash, []byte("merkle proof"))
	if err != nil {
		log.Fatal(err)
	}
	magic, err := auth.IsValidSignature(ctx, appHash, sig)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	fmt.Printf("  Result: %x (authorized: %v)\n\n", magic, magic == account.MagicValue)

	// Step 5: Passkey owner authorizes the same hash
	fmt.Println("Step 5: Passkey owner signs...")
	sig, err = passkeyOwner.SignWrapped(appHash, []byte("merkle proof"))
	if err != nil {
		log.Fatal(err)
	}
	magic, err = auth.IsValidSignature(ctx, appHash, sig)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	fmt.Printf("  Result: %x (authorized: %v)\n\n", magic, magic == account.MagicValue)

	// Step 6: An unregistered key is rejected without touching the directory
	fmt.Println("Step 6: Intruder with an unregistered key signs...")
	intruderKey, err := crypto.GenerateKey()
	if err != nil {
		log.Fatal(err)
	}
	intruder, err := signer.NewSecp256k1Signer(intruderKey, uint256.NewInt(99), domain)
	if err != nil {
		log.Fatal(err)
	}
	sig, err = intruder.SignWrapped(appHash, []byte("merkle proof"))
	if err != nil {
		log.Fatal(err)
	}
	magic, err = auth.IsValidSignature(ctx, appHash, sig)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	fmt.Printf("  Result: %x (authorized: %v)\n\n", magic, magic == account.MagicValue)

	fmt.Println("=== Example Complete ===")
}
