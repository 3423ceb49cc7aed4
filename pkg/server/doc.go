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

// Package server provides HTTP middleware for authenticating requests with
// wrapped account signatures.
//
// Clients sign the keccak256 hash of the request body with any registered
// owner key and send the wrapped signature hex-encoded in the
// X-Wallet-Signature header. The middleware recomputes the body hash,
// runs the full authorization flow and either forwards the request with an
// authorized context marker or rejects it through the error handler.
//
//	mw := server.NewWalletAuthMiddleware(authorizer)
//	http.Handle("/api/", mw.Wrap(apiHandler))
//
// Handlers can check server.IsAuthorized(r.Context()) when the middleware
// runs in optional mode.
package server
