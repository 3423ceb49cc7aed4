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
	"flag"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/account"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/eip712"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/oracle"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/registry"
)

// This example verifies a wrapped signature against live directory and
// proof-verifier contracts. The keyspace key's type still comes from a
// local registry: owner management is the account deployment's concern,
// not the directory's.
func main() {
	var (
		configPath  = flag.String("config", "oracle.yaml", "path to the oracle YAML config")
		chainID     = flag.Int64("chain-id", 8453, "chain id of the account's domain")
		accountHex  = flag.String("account", "", "account contract address")
		keyHex      = flag.String("keyspace-key", "", "keyspace key of the signing owner (hex)")
		keyTypeName = flag.String("key-type", "secp256k1", "owner key type: secp256k1 or webauthn")
		hashHex     = flag.String("hash", "", "application hash to authorize (32-byte hex)")
		sigHex      = flag.String("signature", "", "wrapped signature (hex)")
	)
	flag.Parse()

	if *accountHex == "" || *keyHex == "" || *hashHex == "" || *sigHex == "" {
		flag.Usage()
		log.Fatal("account, keyspace-key, hash and signature are required")
	}

	fmt.Println("=== On-Chain Verification Example ===")

	ctx := context.Background()

	// Step 1: Load the oracle configuration
	fmt.Printf("Step 1: Loading oracle config from %s...\n", *configPath)
	cfg, err := oracle.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("  RPC:       %s\n", cfg.RPCEndpoint)
	fmt.Printf("  Directory: %s\n", cfg.DirectoryAddress)
	fmt.Printf("  Verifier:  %s\n\n", cfg.VerifierAddress)

	// Step 2: Connect to the chain
	fmt.Println("Step 2: Connecting to RPC endpoint...")
	client, err := ethclient.Dial(cfg.RPCEndpoint)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	oracleClient, err := oracle.NewClientFromConfig(client, cfg)
	if err != nil {
		log.Fatalf("Failed to create oracle client: %v", err)
	}

	timeout := cfg.CallTimeout()
	rootCtx, cancel := context.WithTimeout(ctx, timeout)
	root, err := oracleClient.CurrentRoot(rootCtx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to read directory root: %v", err)
	}
	fmt.Printf("  ✓ Connected, current directory root: %s\n\n", root.Hex())

	// Step 3: Build the account's authorization core
	fmt.Println("Step 3: Building authorizer...")
	domain, err := eip712.NewDomain(big.NewInt(*chainID), common.HexToAddress(*accountHex))
	if err != nil {
		log.Fatalf("Failed to create domain: %v", err)
	}

	keyspaceKey, err := uint256.FromHex(*keyHex)
	if err != nil {
		log.Fatalf("Invalid keyspace key: %v", err)
	}

	var keyType registry.KeyType
	switch *keyTypeName {
	case "secp256k1":
		keyType = registry.KeyTypeSecp256k1
	case "webauthn":
		keyType = registry.KeyTypeWebAuthn
	default:
		log.Fatalf("Unknown key type %q", *keyTypeName)
	}

	reg := registry.NewMemoryRegistry()
	if err := reg.Add(keyspaceKey, keyType); err != nil {
		log.Fatalf("Failed to register owner: %v", err)
	}

	auth, err := account.NewAuthorizer(domain, reg, oracleClient,
		account.WithContractCaller(client))
	if err != nil {
		log.Fatalf("Failed to create authorizer: %v", err)
	}
	fmt.Printf("  ✓ Authorizer ready for account %s on chain %d\n\n", *accountHex, *chainID)

	// Step 4: Verify
	fmt.Println("Step 4: Verifying signature...")
	appHash := common.HexToHash(*hashHex)
	sig, err := hexutil.Decode(*sigHex)
	if err != nil {
		log.Fatalf("Invalid signature hex: %v", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	magic, err := auth.IsValidSignature(callCtx, appHash, sig)
	if err != nil {
		log.Fatalf("Verification unavailable: %v", err)
	}

	if magic == account.MagicValue {
		fmt.Printf("  ✓ Signature AUTHORIZED (magic %x)\n", magic)
	} else {
		fmt.Printf("  ✗ Signature REJECTED (magic %x)\n", magic)
	}
}
