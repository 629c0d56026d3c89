// Package cli provides the interactive posadmin terminal client.
//
// It wires configuration, the local session store, the entity service API
// clients, and a REPL whose command surface depends on the logged-in
// user's role. Typical flow: restore any persisted session, prompt for
// credentials when needed, and execute roster commands.
//
// Key features:
//   - Login / Logout with a session that survives restarts
//   - Role-gated rosters: customers and suppliers
//   - List / Find (debounced name filter)
//   - Add / Edit via validated forms with dirty tracking
//   - Status toggle instead of deletion
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
