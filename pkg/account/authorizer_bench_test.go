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

package account

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/eip712"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/registry"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/signer"
)

func BenchmarkIsValidSignature_Secp256k1(b *testing.B) {
	domain, err := eip712.NewDomain(big.NewInt(8453), common.HexToAddress("0x01"))
	if err != nil {
		b.Fatal(err)
	}
	reg := registry.NewMemoryRegistry()
	mo := &mockOracle{root: common.HexToHash("0x01"), confirm: true}
	auth, err := NewAuthorizer(domain, reg, mo)
	if err != nil {
		b.Fatal(err)
	}

	keyspaceKey := uint256.NewInt(1)
	priv, err := crypto.GenerateKey()
	if err != nil {
		b.Fatal(err)
	}
	owner, err := signer.NewSecp256k1Signer(priv, keyspaceKey, domain)
	if err != nil {
		b.Fatal(err)
	}
	if err := reg.Add(keyspaceKey, registry.KeyTypeSecp256k1); err != nil {
		b.Fatal(err)
	}

	appHash := crypto.Keccak256Hash([]byte("user operation"))
	sig, err := owner.SignWrapped(appHash, []byte("proof"))
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		magic, err := auth.IsValidSignature(ctx, appHash, sig)
		if err != nil || magic != MagicValue {
			b.Fatalf("unexpected result: %x %v", magic, err)
		}
	}
}
