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
	"bytes"
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ERC1271MagicValue is the 4-byte success value of
// isValidSignature(bytes32,bytes), which doubles as the function selector.
var ERC1271MagicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

// ContractCaller performs a read-only contract call. *ethclient.Client
// satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var erc1271Args = func() abi.Arguments {
	bytes32Type, err := abi.NewType("bytes32", "", nil)
	if err != nil {
		panic(err)
	}
	bytesType, err := abi.NewType("bytes", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{
		{Name: "hash", Type: bytes32Type},
		{Name: "signature", Type: bytesType},
	}
}()

var erc1271Selector = crypto.Keccak256([]byte("isValidSignature(bytes32,bytes)"))[:4]

// ERC1271Verifier verifies a signature by delegating to the claimed owner
// contract's isValidSignature(bytes32,bytes). A revert, an unreachable
// owner or a return value other than the magic value all verify as false;
// the probe result never surfaces as an error because the call target is
// attacker-chosen.
type ERC1271Verifier struct {
	caller ContractCaller
}

// NewERC1271Verifier creates a verifier that probes owner contracts through
// the given caller.
func NewERC1271Verifier(caller ContractCaller) *ERC1271Verifier {
	return &ERC1271Verifier{caller: caller}
}

// Verify calls isValidSignature on the claimed address and checks for the
// magic success value.
func (v *ERC1271Verifier) Verify(ctx context.Context, material Material, digest common.Hash, sig Signature) (bool, error) {
	addr, ok := material.(AddressMaterial)
	if !ok {
		return false, nil
	}
	raw, ok := sig.(RawSignature)
	if !ok {
		return false, nil
	}
	if v.caller == nil {
		return false, nil
	}

	packed, err := erc1271Args.Pack([32]byte(digest), []byte(raw))
	if err != nil {
		return false, nil
	}

	to := addr.Address()
	ret, err := v.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: append(append([]byte{}, erc1271Selector...), packed...),
	}, nil)
	if err != nil {
		return false, nil
	}
	if len(ret) < len(ERC1271MagicValue) {
		return false, nil
	}
	return bytes.Equal(ret[:4], ERC1271MagicValue[:]), nil
}
