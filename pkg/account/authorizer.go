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
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/eip712"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/keytypes"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/oracle"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/registry"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/wrapper"
)

var (
	// MagicValue is the ERC-1271 success return of IsValidSignature
	MagicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

	// FailureMagic is the single rejection return; every expected failure
	// collapses to it
	FailureMagic = [4]byte{0xff, 0xff, 0xff, 0xff}
)

// Authorizer is the account's signature-authorization core. It composes
// the wrapper codec, the owner registry, the per-key-type verifiers and
// the state-proof oracle into one atomic authorization decision.
type Authorizer struct {
	domain   *eip712.Domain
	registry registry.Registry
	oracle   oracle.StateOracle
	secp     *keytypes.Secp256k1Verifier
	webauthn keytypes.WebAuthnVerifier
}

// Option configures an Authorizer.
type Option func(*Authorizer)

// WithContractCaller enables ERC-1271 fallback for address-identified
// owners that are contracts rather than EOAs.
func WithContractCaller(caller keytypes.ContractCaller) Option {
	return func(a *Authorizer) {
		a.secp = keytypes.NewSecp256k1Verifier(caller)
	}
}

// WithUserVerification requires the UV flag on passkey assertions.
func WithUserVerification() Option {
	return func(a *Authorizer) {
		a.webauthn = keytypes.WebAuthnVerifier{RequireUserVerification: true}
	}
}

// NewAuthorizer creates the authorization core. The registry is held as a
// read-only capability; mutation belongs to the owner-management component.
func NewAuthorizer(domain *eip712.Domain, reg registry.Registry, stateOracle oracle.StateOracle, opts ...Option) (*Authorizer, error) {
	if domain == nil {
		return nil, fmt.Errorf("domain cannot be nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if stateOracle == nil {
		return nil, fmt.Errorf("state oracle cannot be nil")
	}

	a := &Authorizer{
		domain:   domain,
		registry: reg,
		oracle:   stateOracle,
		secp:     keytypes.NewSecp256k1Verifier(nil),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// EIP712Domain reports the account's signing domain per EIP-5267.
func (a *Authorizer) EIP712Domain() eip712.DomainRecord {
	return a.domain.EIP712Domain()
}

// DomainSeparator returns the account's EIP-712 domain separator.
func (a *Authorizer) DomainSeparator() (common.Hash, error) {
	return a.domain.Separator()
}

// ReplaySafeHash returns the domain-bound envelope of an application hash.
func (a *Authorizer) ReplaySafeHash(appHash common.Hash) (common.Hash, error) {
	return a.domain.ReplaySafeHash(appHash)
}

// IsValidSignature decides whether signature authorizes hash for this
// account: Decode, TypeLookup, LocalSigCheck, DirectoryRootFetch,
// ProofConfirm, Decide.
//
// Expected rejections — malformed wrapper, unregistered keyspace key,
// failed local check, failed proof — all return (FailureMagic, nil) and
// are indistinguishable to the caller. The local cryptographic check runs
// strictly before the two oracle reads: on a bad signature neither the
// directory nor the proof verifier is contacted. A non-nil error is an
// infrastructure fault from the oracle and fatal to this attempt.
func (a *Authorizer) IsValidSignature(ctx context.Context, hash common.Hash, signature []byte) ([4]byte, error) {
	// Decode
	w, err := wrapper.Decode(signature)
	if err != nil {
		return FailureMagic, nil
	}

	// TypeLookup
	keyType := a.registry.TypeOf(&w.KeyspaceKey)
	if keyType == registry.KeyTypeNone {
		return FailureMagic, nil
	}

	material, sig, stateProof, ok := decodePayload(keyType, w.Payload)
	if !ok {
		return FailureMagic, nil
	}

	digest, err := a.domain.ReplaySafeHash(hash)
	if err != nil {
		return FailureMagic, fmt.Errorf("compute replay-safe hash: %w", err)
	}

	// LocalSigCheck, gating both oracle reads
	verifier := a.verifierFor(keyType)
	if verifier == nil {
		return FailureMagic, nil
	}
	pass, err := verifier.Verify(ctx, material, digest, sig)
	if err != nil {
		return FailureMagic, fmt.Errorf("local signature check: %w", err)
	}
	if !pass {
		return FailureMagic, nil
	}

	// DirectoryRootFetch, fresh on every attempt
	root, err := a.oracle.CurrentRoot(ctx)
	if err != nil {
		return FailureMagic, fmt.Errorf("fetch directory root: %w", err)
	}

	// ProofConfirm
	confirmed, err := a.oracle.Confirm(ctx, root, &w.KeyspaceKey, material.Commitment(), stateProof)
	if err != nil {
		return FailureMagic, fmt.Errorf("confirm state proof: %w", err)
	}

	// Decide
	if !confirmed {
		return FailureMagic, nil
	}
	return MagicValue, nil
}

// decodePayload decodes the wrapper payload for the registered key type.
// The wire data never carries its own type tag; the registry's answer is
// the only thing that selects a layout.
func decodePayload(keyType registry.KeyType, payload []byte) (keytypes.Material, keytypes.Signature, []byte, bool) {
	switch keyType {
	case registry.KeyTypeSecp256k1:
		p, err := wrapper.DecodeSecp256k1Payload(payload)
		if err != nil {
			return nil, nil, nil, false
		}
		return keytypes.AddressMaterial(p.Owner), keytypes.RawSignature(p.Signature), p.StateProof, true

	case registry.KeyTypeWebAuthn:
		p, err := wrapper.DecodeWebAuthnPayload(payload)
		if err != nil {
			return nil, nil, nil, false
		}
		material := &keytypes.WebAuthnMaterial{X: p.X, Y: p.Y}
		assertion := &keytypes.WebAuthnAssertion{
			AuthenticatorData: p.AuthenticatorData,
			ClientDataJSON:    p.ClientDataJSON,
			R:                 p.R,
			S:                 p.S,
		}
		return material, assertion, p.StateProof, true

	default:
		return nil, nil, nil, false
	}
}

// verifierFor is the single dispatch point over the closed key-type set.
func (a *Authorizer) verifierFor(keyType registry.KeyType) keytypes.Verifier {
	switch keyType {
	case registry.KeyTypeSecp256k1:
		return a.secp
	case registry.KeyTypeWebAuthn:
		return a.webauthn
	default:
		return nil
	}
}
