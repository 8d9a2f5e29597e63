// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, header names and cache keys that are
shared between the transport, service and storage layers.

Using this package keeps magic strings and magic numbers out of the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tilawa-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "tilawa.app"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderContentType   = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisKeyChapterList    = "catalog:chapters"
	RedisPrefixChapter     = "catalog:chapter:"
	DefaultCatalogCacheTTL = 6 * time.Hour

	// CatalogMaxAge is the Cache-Control max-age of chapter and reciter responses.
	CatalogMaxAge = time.Hour
)

// # Upstream Providers

const (
	// DefaultProviderTimeout bounds a single upstream request.
	DefaultProviderTimeout = 15 * time.Second

	// DefaultProviderConcurrency bounds concurrent chapter fetches.
	DefaultProviderConcurrency = 4

	// ProviderRetryDelay is the pause before the single retry of a failed upstream call.
	ProviderRetryDelay = 500 * time.Millisecond
)
