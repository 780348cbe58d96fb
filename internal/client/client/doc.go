// Package client contains the client-side plumbing that talks to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. The Backend Auth API contract (see the Client interface): Login,
//     Register, Refresh, ForgotPassword and ResetPassword.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that sets the
//     standard JSON headers, a Bearer Authorization header when a token is
//     given, and an X-Request-ID per call.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite session store and applies embedded goose migrations.
//
// # Error Handling
//
// Transport and parse failures wrap ErrUnavailable (match with errors.Is).
// Failures reported by the backend are *APIError values (match with
// errors.As) carrying the backend's message and error list verbatim.
package client
