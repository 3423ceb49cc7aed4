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

package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// ContractCaller performs a read-only contract call. *ethclient.Client
// satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var (
	rootSelector   = crypto.Keccak256([]byte("root()"))[:4]
	verifySelector = crypto.Keccak256([]byte("verify(bytes32,uint256,bytes32,bytes)"))[:4]
)

var verifyArgs = func() abi.Arguments {
	mustType := func(t string) abi.Type {
		ty, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(err)
		}
		return ty
	}
	return abi.Arguments{
		{Name: "root", Type: mustType("bytes32")},
		{Name: "keyspaceKey", Type: mustType("uint256")},
		{Name: "material", Type: mustType("bytes32")},
		{Name: "proof", Type: mustType("bytes")},
	}
}()

// Client is the StateOracle implementation backed by the on-chain key
// directory and proof verifier contracts.
type Client struct {
	caller    ContractCaller
	directory common.Address
	verifier  common.Address
}

// NewClient creates a Client reading the directory and verifier at the
// given addresses through caller.
func NewClient(caller ContractCaller, directory, verifier common.Address) (*Client, error) {
	if caller == nil {
		return nil, fmt.Errorf("contract caller cannot be nil")
	}
	if directory == (common.Address{}) || verifier == (common.Address{}) {
		return nil, fmt.Errorf("directory and verifier addresses must be set")
	}
	return &Client{caller: caller, directory: directory, verifier: verifier}, nil
}

// NewClientFromConfig dials nothing itself; it wires a Client from a
// validated Config and an already-connected caller.
func NewClientFromConfig(caller ContractCaller, cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid oracle config: %w", err)
	}
	return NewClient(caller, common.HexToAddress(cfg.DirectoryAddress), common.HexToAddress(cfg.VerifierAddress))
}

// CurrentRoot reads root() from the directory contract. Errors are surfaced
// as-is: an unreachable or reverting directory is an infrastructure fault,
// never a rejection.
func (c *Client) CurrentRoot(ctx context.Context) (common.Hash, error) {
	ret, err := c.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &c.directory,
		Data: append([]byte{}, rootSelector...),
	}, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("read directory root: %w", err)
	}
	if len(ret) != common.HashLength {
		return common.Hash{}, fmt.Errorf("read directory root: unexpected return length %d", len(ret))
	}
	return common.BytesToHash(ret), nil
}

// Confirm calls verify(root, keyspaceKey, material, proof) on the proof
// verifier contract. A clean false return is an expected outcome; call
// failures and malformed returns are infrastructure faults.
func (c *Client) Confirm(ctx context.Context, root common.Hash, key *uint256.Int, materialCommit common.Hash, proof []byte) (bool, error) {
	if key == nil {
		return false, fmt.Errorf("keyspace key cannot be nil")
	}

	packed, err := verifyArgs.Pack([32]byte(root), key.ToBig(), [32]byte(materialCommit), proof)
	if err != nil {
		return false, fmt.Errorf("pack verify call: %w", err)
	}

	ret, err := c.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &c.verifier,
		Data: append(append([]byte{}, verifySelector...), packed...),
	}, nil)
	if err != nil {
		return false, fmt.Errorf("call proof verifier: %w", err)
	}
	if len(ret) != common.HashLength {
		return false, fmt.Errorf("call proof verifier: unexpected return length %d", len(ret))
	}

	word := new(uint256.Int).SetBytes(ret)
	switch {
	case word.IsZero():
		return false, nil
	case word.Eq(uint256.NewInt(1)):
		return true, nil
	default:
		return false, fmt.Errorf("call proof verifier: non-boolean return")
	}
}
