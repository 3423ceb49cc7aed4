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

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// StateOracle is the boundary to the external key directory and its proof
// verifier. Both calls are read-only; neither result may be cached across
// verification attempts because the directory can rotate at any time.
type StateOracle interface {
	// CurrentRoot fetches the directory's current commitment. An error
	// means the directory is unavailable or inconsistent and is fatal to
	// the verification attempt.
	CurrentRoot(ctx context.Context) (common.Hash, error)

	// Confirm asks the proof verifier whether proof demonstrates that the
	// key material behind materialCommit is currently bound to key under
	// root. A false result is an expected outcome (stale or forged proof);
	// an error means the verifier itself failed.
	Confirm(ctx context.Context, root common.Hash, key *uint256.Int, materialCommit common.Hash, proof []byte) (bool, error)
}
