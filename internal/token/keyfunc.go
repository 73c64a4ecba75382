package token

import (
	"context"
	"fmt"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// StaticKeyfunc resolves every token to the single shared HMAC secret. The
// system never rotates the key and exposes no JWKS endpoint, so there is
// nothing to fetch remotely.
type StaticKeyfunc struct {
	secret []byte
}

var _ keyfunc.Keyfunc = StaticKeyfunc{}

func NewStaticKeyfunc(secret []byte) StaticKeyfunc {
	return StaticKeyfunc{secret: secret}
}

func (s StaticKeyfunc) Keyfunc(t *jwt.Token) (any, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
	}
	return s.secret, nil
}

func (s StaticKeyfunc) KeyfuncCtx(_ context.Context) jwt.Keyfunc {
	return s.Keyfunc
}

func (s StaticKeyfunc) Storage() jwkset.Storage {
	return nil
}

func (s StaticKeyfunc) VerificationKeySet(_ context.Context) (jwt.VerificationKeySet, error) {
	return jwt.VerificationKeySet{Keys: []jwt.VerificationKey{s.secret}}, nil
}
