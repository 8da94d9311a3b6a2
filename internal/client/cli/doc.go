// Package cli provides the interactive terminal dashboard.
//
// It wires configuration, the backend client, the store, the alert bus and
// the services, restores the previous session from the cookie jar (if any)
// and runs a REPL over stdin.
//
// Key features:
//   - Sign up / Log in / Log out
//   - Account view, profile editor, password change
//   - Paginated deposit table: list, next, prev, page, rows
//   - Add / edit / delete deposits, CSV export (link or saved file)
//   - Alerts: printed after each command, listed with "alerts", closed
//     with "dismiss"
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// The dashboard only reads store snapshots; every change goes through a
// service.
package cli
