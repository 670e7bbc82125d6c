// Package acl implements the Anti-Corruption Layer for the extraction
// oracle. The oracle's wire format (request envelopes, candidate lists,
// error bodies) never leaks past this package; callers see the ports.Oracle
// contract and domain errors only.
//
// The oracle is an untrusted collaborator: it may return malformed JSON,
// ignore instructions, or fail outright. This layer owns the transport-level
// failure mapping:
//
//   - timeouts, network failures, exhausted retries -> domain.OracleError
//   - 401/403 auth failures                         -> domain.OracleError
//   - 429 quota exhaustion                          -> domain.OracleError
//   - 5xx upstream failures                         -> domain.OracleError
//
// Understanding the reply text itself (fences, prose, embedded JSON) is not
// this package's job; that belongs to the extraction pipeline.
package acl
