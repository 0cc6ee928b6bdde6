// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the local SQLite mirror of the session/user store,
// the HTTP API client, the order store and an interactive REPL. Typical flow:
// hydrate the store from disk, open a backend session if none is active,
// start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Logout
//   - Account dashboard with recent orders
//   - Order list with substring search, refresh
//   - Guest order tracking by order number and email
//   - Product search suggestions
//   - Backend session start / end
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
