// Package client talks to the card exchange API and bootstraps the local
// database.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface): sign in,
//     create and update the user, proposals, discussions, messages and the
//     forgotten-password flow.
//  2. An HTTP implementation (see HTTPClient) that sends every request with
//     a JSON content type, a Basic Authorization header built from the
//     session token and the X-Client-ID header, and decodes responses as
//     JSON or text depending on the call.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite database and applies the embedded goose migrations.
//
// # Error Handling
//
// Failures are logged and returned to the caller; nothing is retried.
// Transport failures wrap ErrUnavailable, non-2xx responses are *HTTPError
// (matching ErrUnauthorized for 401/403) and undecodable bodies wrap
// ErrUnexpectedResponse.
package client
