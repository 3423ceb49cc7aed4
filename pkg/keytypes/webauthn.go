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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// authenticator data is rpIdHash (32) || flags (1) || signCount (4)
	minAuthDataLength = 37

	flagUserPresent  = 0x01
	flagUserVerified = 0x04
)

// p256HalfN bounds s for malleability rejection.
var p256HalfN = new(big.Int).Rsh(elliptic.P256().Params().N, 1)

// clientData is the subset of the WebAuthn client data JSON the verifier
// inspects.
type clientData struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
}

// WebAuthnVerifier verifies platform-authenticator assertions against a
// claimed P-256 public key. The assertion binds the message digest through
// the base64url challenge in the client data JSON.
type WebAuthnVerifier struct {
	// RequireUserVerification additionally demands the UV flag in the
	// authenticator data
	RequireUserVerification bool
}

// Verify checks the assertion per the WebAuthn signing rules: the signed
// message is sha256(authenticatorData || sha256(clientDataJSON)) and the
// challenge must be the base64url encoding of digest. Malformed assertions
// verify as false.
func (v WebAuthnVerifier) Verify(_ context.Context, material Material, digest common.Hash, sig Signature) (bool, error) {
	pub, ok := material.(*WebAuthnMaterial)
	if !ok {
		return false, nil
	}
	assertion, ok := sig.(*WebAuthnAssertion)
	if !ok || assertion == nil {
		return false, nil
	}

	if len(assertion.AuthenticatorData) < minAuthDataLength {
		return false, nil
	}
	flags := assertion.AuthenticatorData[32]
	if flags&flagUserPresent == 0 {
		return false, nil
	}
	if v.RequireUserVerification && flags&flagUserVerified == 0 {
		return false, nil
	}

	var cd clientData
	if err := json.Unmarshal(assertion.ClientDataJSON, &cd); err != nil {
		return false, nil
	}
	if cd.Type != "webauthn.get" {
		return false, nil
	}
	challenge, err := base64.RawURLEncoding.DecodeString(cd.Challenge)
	if err != nil || !bytes.Equal(challenge, digest[:]) {
		return false, nil
	}

	s := assertion.S.ToBig()
	if s.Sign() == 0 || s.Cmp(p256HalfN) > 0 {
		return false, nil
	}

	clientDataHash := sha256.Sum256(assertion.ClientDataJSON)
	signed := sha256.Sum256(append(append([]byte{}, assertion.AuthenticatorData...), clientDataHash[:]...))

	key := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     pub.X.ToBig(),
		Y:     pub.Y.ToBig(),
	}
	if !key.Curve.IsOnCurve(key.X, key.Y) {
		return false, nil
	}
	return ecdsa.Verify(key, signed[:], assertion.R.ToBig(), s), nil
}
