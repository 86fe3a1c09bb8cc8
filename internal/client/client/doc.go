// Package client contains the RemoteStore side of the Billed client.
//
// # Overview
//
// The package provides:
//  1. The Store contract consumed by the services: Bills().List/Create/Update,
//     Login and Ping. NotConfigured (a nil Store) is the explicit "no remote
//     endpoint" variant.
//  2. HTTPStore, a REST implementation that keeps the login token in memory
//     and injects it on every request through a RoundTripper.
//  3. MemoryStore, an in-process store used for the -demo mode and tests.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite session database with embedded goose migrations.
//
// # Error Handling
//
// Non-2xx answers become *StatusError, which unwraps to ErrUnauthorized,
// ErrNotFound or ErrUnavailable where one applies. Network failures wrap
// ErrUnavailable. Callers match with errors.Is.
package client
