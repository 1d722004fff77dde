// Package session carries the cart between requests. A token is whatever the
// transport hands back to the client: the encoded cart itself for the cookie
// backend, or an opaque id for the redis backend.
package session

import (
	"context"

	"storefront/internal/domain"
)

const (
	BackendCookie = "cookie"
	BackendRedis  = "redis"
)

// Store loads and saves the cart held by a session token.
//
// Load never fails: a missing, expired or tampered token yields an empty cart.
// Save returns the token the client must present next time.
type Store interface {
	Load(ctx context.Context, token string) domain.Cart
	Save(ctx context.Context, token string, cart domain.Cart) (string, error)
}

func emptyIfNil(c domain.Cart) domain.Cart {
	if c == nil {
		return domain.Cart{}
	}
	return c
}
