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
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCaller plays back per-address responses and records every call.
type mockCaller struct {
	responses map[common.Address][]byte
	errs      map[common.Address]error
	msgs      []ethereum.CallMsg
}

func (m *mockCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	m.msgs = append(m.msgs, msg)
	if msg.To == nil {
		return nil, errors.New("missing call target")
	}
	if err := m.errs[*msg.To]; err != nil {
		return nil, err
	}
	return m.responses[*msg.To], nil
}

var (
	testDirectory = common.HexToAddress("0xd1aec7047")
	testVerifier  = common.HexToAddress("0x7e81f1e4")
)

func TestClient_CurrentRoot(t *testing.T) {
	// Test Case 1: root() returns the directory commitment

	// Setup
	root := common.HexToHash("0xabcdef")
	caller := &mockCaller{responses: map[common.Address][]byte{testDirectory: root.Bytes()}}
	cli, err := NewClient(caller, testDirectory, testVerifier)
	require.NoError(t, err)

	// Execute
	got, err := cli.CurrentRoot(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, root, got)
	require.Len(t, caller.msgs, 1)
	assert.Equal(t, testDirectory, *caller.msgs[0].To)
	assert.Equal(t, rootSelector, caller.msgs[0].Data)
}

func TestClient_CurrentRoot_Faults(t *testing.T) {
	// Test Case 2: directory reverts and malformed returns surface as errors

	revert := errors.New("execution reverted")
	caller := &mockCaller{errs: map[common.Address]error{testDirectory: revert}}
	cli, err := NewClient(caller, testDirectory, testVerifier)
	require.NoError(t, err)

	_, err = cli.CurrentRoot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, revert), "directory error must propagate unmodified")

	caller = &mockCaller{responses: map[common.Address][]byte{testDirectory: {0x01, 0x02}}}
	cli, err = NewClient(caller, testDirectory, testVerifier)
	require.NoError(t, err)

	_, err = cli.CurrentRoot(context.Background())
	require.Error(t, err)
}

func TestClient_Confirm(t *testing.T) {
	// Test Case 3: verify(...) true/false map to (true,nil)/(false,nil)

	// Setup
	root := common.HexToHash("0x01")
	key := uint256.NewInt(7)
	material := common.HexToHash("0x02")
	proof := []byte("proof")

	trueWord := common.BigToHash(big.NewInt(1)).Bytes()
	caller := &mockCaller{responses: map[common.Address][]byte{testVerifier: trueWord}}
	cli, err := NewClient(caller, testDirectory, testVerifier)
	require.NoError(t, err)

	// Execute
	ok, err := cli.Confirm(context.Background(), root, key, material, proof)

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, caller.msgs, 1)
	assert.Equal(t, testVerifier, *caller.msgs[0].To)
	assert.True(t, bytes.HasPrefix(caller.msgs[0].Data, verifySelector))

	caller.responses[testVerifier] = make([]byte, 32)
	ok, err = cli.Confirm(context.Background(), root, key, material, proof)
	require.NoError(t, err)
	assert.False(t, ok, "a clean false is an expected outcome, not an error")
}

func TestClient_Confirm_Faults(t *testing.T) {
	// Test Case 4: verifier call failures and garbage returns are errors

	root := common.HexToHash("0x01")
	key := uint256.NewInt(7)
	material := common.HexToHash("0x02")

	boom := errors.New("connection refused")
	caller := &mockCaller{errs: map[common.Address]error{testVerifier: boom}}
	cli, err := NewClient(caller, testDirectory, testVerifier)
	require.NoError(t, err)

	_, err = cli.Confirm(context.Background(), root, key, material, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	// Non-boolean word
	word := common.BigToHash(big.NewInt(2)).Bytes()
	caller = &mockCaller{responses: map[common.Address][]byte{testVerifier: word}}
	cli, err = NewClient(caller, testDirectory, testVerifier)
	require.NoError(t, err)

	_, err = cli.Confirm(context.Background(), root, key, material, nil)
	require.Error(t, err)

	// Nil keyspace key is a programmer error
	_, err = cli.Confirm(context.Background(), root, nil, material, nil)
	require.Error(t, err)
}

func TestNewClient_Validation(t *testing.T) {
	// Test Case 5: constructor rejects missing collaborators

	_, err := NewClient(nil, testDirectory, testVerifier)
	assert.Error(t, err)

	_, err = NewClient(&mockCaller{}, common.Address{}, testVerifier)
	assert.Error(t, err)

	_, err = NewClient(&mockCaller{}, testDirectory, common.Address{})
	assert.Error(t, err)
}
