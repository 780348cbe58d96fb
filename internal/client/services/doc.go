// Package services holds the client-side application services. The main
// one is SessionManager, which owns authentication state for the running
// client.
//
// # Trust boundary
//
// Tokens are decoded without verifying their signature (no key is available
// client-side). The identity and role SessionManager reports are UI hints
// for rendering and navigation; the backend must re-check every privileged
// request.
//
// # Errors
//
// Every network-calling method returns (value, error) and never panics.
// Callers distinguish failures with errors.Is / errors.As:
//   - client.ErrUnavailable: the backend could not be reached or read
//   - *client.APIError: the backend refused; Message/Errors are shown verbatim
//   - auth.ErrDecode: the token was malformed or missing a claim
//   - *ValidationError: local input rules failed, nothing was sent
//   - ErrNoSession, ErrNotHost: the stored session cannot make the call
package services
