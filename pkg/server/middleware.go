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
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/account"
)

// SignatureHeader carries the hex-encoded wrapped signature over the
// keccak256 hash of the request body.
const SignatureHeader = "X-Wallet-Signature"

type contextKey string

const authorizedKey contextKey = "wallet_authorized"

// ErrorHandler handles verification errors
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WalletAuthMiddleware provides HTTP middleware that authenticates requests
// carrying a wrapped account signature over the request body.
type WalletAuthMiddleware struct {
	authorizer   *account.Authorizer
	errorHandler ErrorHandler
	optional     bool
}

// NewWalletAuthMiddleware creates middleware backed by the given authorizer.
func NewWalletAuthMiddleware(authorizer *account.Authorizer) *WalletAuthMiddleware {
	return &WalletAuthMiddleware{
		authorizer:   authorizer,
		errorHandler: defaultErrorHandler,
	}
}

// SetErrorHandler sets a custom error handler
func (m *WalletAuthMiddleware) SetErrorHandler(handler ErrorHandler) {
	m.errorHandler = handler
}

// SetOptional sets whether signature verification is optional.
// If true, requests without a signature header pass through unauthorized.
func (m *WalletAuthMiddleware) SetOptional(optional bool) {
	m.optional = optional
}

// Wrap wraps an HTTP handler with wallet signature authentication.
func (m *WalletAuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip verification for OPTIONS requests (CORS preflight)
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		sigHex := r.Header.Get(SignatureHeader)
		if sigHex == "" {
			if m.optional {
				next.ServeHTTP(w, r)
				return
			}
			m.errorHandler(w, r, fmt.Errorf("missing %s header", SignatureHeader))
			return
		}

		sig, err := hexutil.Decode(sigHex)
		if err != nil {
			m.errorHandler(w, r, fmt.Errorf("malformed %s header: %w", SignatureHeader, err))
			return
		}

		// Read body to preserve it for the handler
		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body.Close()
		}
		r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		appHash := crypto.Keccak256Hash(bodyBytes)
		magic, err := m.authorizer.IsValidSignature(r.Context(), appHash, sig)
		if err != nil {
			m.errorHandler(w, r, fmt.Errorf("signature verification unavailable: %w", err))
			return
		}
		if magic != account.MagicValue {
			m.errorHandler(w, r, fmt.Errorf("signature rejected"))
			return
		}

		ctx := context.WithValue(r.Context(), authorizedKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsAuthorized reports whether the request context passed wallet
// authentication.
func IsAuthorized(ctx context.Context) bool {
	authorized, ok := ctx.Value(authorizedKey).(bool)
	return ok && authorized
}

// defaultErrorHandler is the default error handler
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, fmt.Sprintf("Unauthorized: %s", err.Error()), http.StatusUnauthorized)
}
