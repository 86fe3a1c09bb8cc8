// Package cli provides the interactive Billed command-line client.
//
// It wires configuration, the local session database, the bills store and
// the application services behind a small REPL. Typical flow: resume the
// persisted session or prompt for credentials, start a background
// connectivity watcher, then execute user commands.
//
// Key features:
//   - Login as employee or administrator / Logout
//   - List bills (most recent first) and show a bill's receipt URL
//   - Create a bill: attach a receipt image, fill in the form, submit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
