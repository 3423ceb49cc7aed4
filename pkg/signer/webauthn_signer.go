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

package signer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/keyspace-x-project/keyspace-auth-go/pkg/eip712"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/keytypes"
	"github.com/keyspace-x-project/keyspace-auth-go/pkg/wrapper"
)

// authenticator data: rpIdHash (32) || flags (1) || signCount (4)
const (
	authDataLength   = 37
	flagUserPresent  = 0x01
	flagUserVerified = 0x04
)

// WebAuthnSigner is a software passkey: it produces full WebAuthn
// assertions the way a platform authenticator would. Intended for tests,
// examples and development setups; production passkeys live in hardware.
type WebAuthnSigner struct {
	key         *ecdsa.PrivateKey
	keyspaceKey uint256.Int
	domain      *eip712.Domain
	rpID        string
	origin      string
}

// NewWebAuthnSigner creates a software passkey bound to the given relying
// party and origin. If key is nil a fresh P-256 key is generated.
func NewWebAuthnSigner(key *ecdsa.PrivateKey, keyspaceKey *uint256.Int, domain *eip712.Domain, rpID, origin string) (*WebAuthnSigner, error) {
	if keyspaceKey == nil {
		return nil, fmt.Errorf("keyspace key cannot be nil")
	}
	if domain == nil {
		return nil, fmt.Errorf("domain cannot be nil")
	}
	if key == nil {
		var err error
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generate passkey: %w", err)
		}
	}
	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("passkey must be a P-256 key")
	}
	if rpID == "" {
		rpID = "keys.example"
	}
	if origin == "" {
		origin = "https://" + rpID
	}

	s := &WebAuthnSigner{key: key, domain: domain, rpID: rpID, origin: origin}
	s.keyspaceKey.Set(keyspaceKey)
	return s, nil
}

// Material returns the passkey public key the signatures claim.
func (s *WebAuthnSigner) Material() keytypes.Material {
	m := &keytypes.WebAuthnMaterial{}
	m.X.SetFromBig(s.key.PublicKey.X)
	m.Y.SetFromBig(s.key.PublicKey.Y)
	return m
}

// authenticatorData builds the fixed assertion header: sha256(rpID), the
// UP|UV flags and a zero signature counter.
func (s *WebAuthnSigner) authenticatorData() []byte {
	rpIDHash := sha256.Sum256([]byte(s.rpID))
	data := make([]byte, authDataLength)
	copy(data, rpIDHash[:])
	data[32] = flagUserPresent | flagUserVerified
	return data
}

// SignWrapped produces an assertion whose challenge is the replay-safe
// envelope of appHash and encodes the full signature wrapper.
func (s *WebAuthnSigner) SignWrapped(appHash common.Hash, stateProof []byte) ([]byte, error) {
	digest, err := s.domain.ReplaySafeHash(appHash)
	if err != nil {
		return nil, fmt.Errorf("compute replay-safe hash: %w", err)
	}

	clientData, err := json.Marshal(map[string]string{
		"type":      "webauthn.get",
		"challenge": base64.RawURLEncoding.EncodeToString(digest[:]),
		"origin":    s.origin,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal client data: %w", err)
	}

	authData := s.authenticatorData()
	clientDataHash := sha256.Sum256(clientData)
	signed := sha256.Sum256(append(append([]byte{}, authData...), clientDataHash[:]...))

	r, sScalar, err := ecdsa.Sign(rand.Reader, s.key, signed[:])
	if err != nil {
		return nil, fmt.Errorf("sign assertion: %w", err)
	}

	// authenticators may emit high-s; the account only accepts low-s
	n := elliptic.P256().Params().N
	if sScalar.Cmp(new(big.Int).Rsh(n, 1)) > 0 {
		sScalar = new(big.Int).Sub(n, sScalar)
	}

	p := &wrapper.WebAuthnPayload{
		AuthenticatorData: authData,
		ClientDataJSON:    clientData,
		StateProof:        stateProof,
	}
	p.X.SetFromBig(s.key.PublicKey.X)
	p.Y.SetFromBig(s.key.PublicKey.Y)
	p.R.SetFromBig(r)
	p.S.SetFromBig(sScalar)

	payload, err := wrapper.EncodeWebAuthnPayload(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	w := &wrapper.SignatureWrapper{Payload: payload}
	w.KeyspaceKey.Set(&s.keyspaceKey)
	return wrapper.Encode(w)
}
