// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify emails the band leader whenever someone submits or updates a
// response. Delivery goes through the Resend HTTP API and runs in the
// background; a failed send is logged and never affects the submission.
package notify
