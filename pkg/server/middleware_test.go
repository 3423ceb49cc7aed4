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

package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/account"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/eip712"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/registry"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/signer"
)

// mockOracle confirms every proof against a fixed root.
type mockOracle struct {
	root    common.Hash
	confirm bool
	rootErr error
}

func (m *mockOracle) CurrentRoot(ctx context.Context) (common.Hash, error) {
	if m.rootErr != nil {
		return common.Hash{}, m.rootErr
	}
	return m.root, nil
}

func (m *mockOracle) Confirm(ctx context.Context, root common.Hash, key *uint256.Int, materialCommit common.Hash, proof []byte) (bool, error) {
	return m.confirm, nil
}

type middlewareFixture struct {
	middleware *WalletAuthMiddleware
	owner      *signer.Secp256k1Signer
	oracle     *mockOracle
}

func newMiddlewareFixture(t *testing.T) *middlewareFixture {
	t.Helper()

	domain, err := eip712.NewDomain(big.NewInt(8453), common.HexToAddress("0x1111"))
	require.NoError(t, err)

	reg := registry.NewMemoryRegistry()
	mo := &mockOracle{root: common.HexToHash("0xaa"), confirm: true}

	auth, err := account.NewAuthorizer(domain, reg, mo)
	require.NoError(t, err)

	keyspaceKey := uint256.NewInt(7)
	priv, err := crypto.GenerateKey()
	require.NoError(t, err)
	owner, err := signer.NewSecp256k1Signer(priv, keyspaceKey, domain)
	require.NoError(t, err)
	require.NoError(t, reg.Add(keyspaceKey, registry.KeyTypeSecp256k1))

	return &middlewareFixture{
		middleware: NewWalletAuthMiddleware(auth),
		owner:      owner,
		oracle:     mo,
	}
}

// signedRequest builds a POST request whose body hash is signed by the
// fixture owner.
func (f *middlewareFixture) signedRequest(t *testing.T, body []byte) *http.Request {
	t.Helper()

	appHash := crypto.Keccak256Hash(body)
	sig, err := f.owner.SignWrapped(appHash, []byte("proof"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/test", bytes.NewReader(body))
	req.Header.Set(SignatureHeader, hexutil.Encode(sig))
	return req
}

func TestWalletAuthMiddleware(t *testing.T) {
	// Test Case 1: Valid signature passes through with authorized context
	t.Run("ValidSignature", func(t *testing.T) {
		// Setup
		f := newMiddlewareFixture(t)
		body := []byte(`{"action":"transfer"}`)

		var gotBody []byte
		var gotAuthorized bool
		handler := f.middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			gotAuthorized = IsAuthorized(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		// Execute
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, f.signedRequest(t, body))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotAuthorized)
		assert.Equal(t, body, gotBody, "handler should see the original body")
	})

	// Test Case 2: Missing header is rejected with 401
	t.Run("MissingHeader", func(t *testing.T) {
		f := newMiddlewareFixture(t)
		handler := f.middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/test", bytes.NewReader([]byte("body")))
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	// Test Case 3: Optional mode lets unsigned requests through, unauthorized
	t.Run("OptionalMode", func(t *testing.T) {
		f := newMiddlewareFixture(t)
		f.middleware.SetOptional(true)

		var gotAuthorized bool
		called := false
		handler := f.middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			gotAuthorized = IsAuthorized(r.Context())
		}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/test", bytes.NewReader([]byte("body")))
		handler.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.False(t, gotAuthorized)
	})

	// Test Case 4: Signature over a different body is rejected
	t.Run("TamperedBody", func(t *testing.T) {
		f := newMiddlewareFixture(t)
		handler := f.middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := f.signedRequest(t, []byte("original"))
		req.Body = io.NopCloser(bytes.NewReader([]byte("tampered")))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	// Test Case 5: Malformed hex header is rejected before verification
	t.Run("MalformedHeader", func(t *testing.T) {
		f := newMiddlewareFixture(t)
		handler := f.middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
		req.Header.Set(SignatureHeader, "not-hex")
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	// Test Case 6: OPTIONS requests skip verification
	t.Run("OptionsPassthrough", func(t *testing.T) {
		f := newMiddlewareFixture(t)
		called := false
		handler := f.middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/test", nil)
		handler.ServeHTTP(rec, req)

		assert.True(t, called)
	})

	// Test Case 7: Oracle infrastructure fault surfaces through the error
	// handler, not as a silent rejection
	t.Run("OracleFault", func(t *testing.T) {
		f := newMiddlewareFixture(t)
		f.oracle.rootErr = fmt.Errorf("rpc unreachable")

		var handlerErr error
		f.middleware.SetErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			handlerErr = err
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		})
		handler := f.middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, f.signedRequest(t, []byte("body")))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Error(t, handlerErr)
		assert.Contains(t, handlerErr.Error(), "rpc unreachable")
	})
}
