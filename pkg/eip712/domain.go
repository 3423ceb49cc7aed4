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

package eip712

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	// DomainName is the EIP-712 domain name of the account
	DomainName = "Coinbase Smart Wallet"

	// DomainVersion is the EIP-712 domain version of the account
	DomainVersion = "1"

	// DomainFields is the EIP-5267 fields bitmap: name, version, chainId
	// and verifyingContract present; salt and extensions absent
	DomainFields = 0x0f

	// messagePrimaryType is the primary type of the replay-safe envelope
	messagePrimaryType = "CoinbaseSmartWalletMessage"
)

// typedDataTypes holds the fixed EIP-712 type definitions for the domain and
// the single-field replay-safe message envelope.
var typedDataTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	messagePrimaryType: {
		{Name: "hash", Type: "bytes32"},
	},
}

// DomainRecord is the EIP-5267 description of the account's signing domain.
type DomainRecord struct {
	Fields            byte
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
	Salt              [32]byte
	Extensions        []*big.Int
}

// Domain binds the fixed name/version to the live execution context: the
// chain id and the account address the signature is being checked for.
type Domain struct {
	chainID *big.Int
	account common.Address
}

// NewDomain creates a Domain for the given chain id and account address.
func NewDomain(chainID *big.Int, account common.Address) (*Domain, error) {
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("chain id must be a positive integer")
	}
	return &Domain{chainID: new(big.Int).Set(chainID), account: account}, nil
}

// EIP712Domain reports the domain record per EIP-5267.
func (d *Domain) EIP712Domain() DomainRecord {
	return DomainRecord{
		Fields:            DomainFields,
		Name:              DomainName,
		Version:           DomainVersion,
		ChainID:           new(big.Int).Set(d.chainID),
		VerifyingContract: d.account,
		Extensions:        []*big.Int{},
	}
}

// typedData assembles the go-ethereum typed-data view of this domain.
func (d *Domain) typedData() apitypes.TypedData {
	return apitypes.TypedData{
		Types:       typedDataTypes,
		PrimaryType: messagePrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              DomainName,
			Version:           DomainVersion,
			ChainId:           (*math.HexOrDecimal256)(d.chainID),
			VerifyingContract: d.account.Hex(),
		},
	}
}

// Separator computes the EIP-712 domain separator. It is recomputed on
// every call; callers that could observe a chain-id change between calls
// must not cache the result.
func (d *Domain) Separator() (common.Hash, error) {
	td := d.typedData()
	sep, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return common.Hash{}, fmt.Errorf("hash domain: %w", err)
	}
	return common.BytesToHash(sep), nil
}

// ReplaySafeHash wraps an application hash in the single-field
// CoinbaseSmartWalletMessage envelope bound to this domain. The result is
// unique per (account, chain, appHash) tuple and is the digest all owner
// signatures are actually computed over.
func (d *Domain) ReplaySafeHash(appHash common.Hash) (common.Hash, error) {
	td := d.typedData()

	domainSep, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return common.Hash{}, fmt.Errorf("hash domain: %w", err)
	}

	msgHash, err := td.HashStruct(messagePrimaryType, apitypes.TypedDataMessage{
		"hash": hexutil.Encode(appHash[:]),
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("hash message: %w", err)
	}

	// keccak256(0x1901 || domainSeparator || hashStruct(message))
	raw := make([]byte, 0, 2+len(domainSep)+len(msgHash))
	raw = append(raw, 0x19, 0x01)
	raw = append(raw, domainSep...)
	raw = append(raw, msgHash...)
	return crypto.Keccak256Hash(raw), nil
}
