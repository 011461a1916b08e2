// Package client contains the device-side plumbing of JobKeeper.
//
// # Overview
//
//  1. A transport-agnostic contract for the backend (see Client): token
//     login, job notes, presigned attachment URLs and a liveness Ping.
//  2. APIClient, which speaks JSON over HTTP to the backend, attaches the
//     bearer token and pings the gRPC health service.
//  3. Local database bootstrap (InitDatabase, RunMigrations): an SQLite file
//     with embedded goose migrations backing the key/value store.
//
// # Error Handling
//
// Transport failures and 502/503/504 responses surface as ErrUnavailable,
// 401/403 as ErrUnauthorized, 404 as ErrNotFound. Anything else is an
// *APIError carrying the status and the server's error message.
package client
