// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the per-poll admin key.

# Admin Keys

Each poll gets a random 24-byte (192-bit) secret when it is created:

	adminKey, err := auth.GenerateAdminKey()

The key is URL-safe base64 encoded without padding. It is stored with the
poll, returned once in the creation response as deletionToken, and never
serialized again.

# Validation

Protected requests send the key in the X-Admin-Key header:

	err := auth.ValidateAdminKey(poll.DeletionToken, r.Header.Get(auth.AdminKeyHeader))

Comparison is constant-time. A missing or wrong key yields ErrInvalidAdminKey.
*/
package auth
