// Package cli provides the tcgexchange command-line client.
//
// Every command operates on an assembled app.App. Collection edits are
// persisted locally right away and sent to the server by the debounced sync;
// commands that edit state flush that sync before returning so nothing is
// lost when the process exits.
//
// Commands:
//   - signin, signup, logout, whoami, refresh, forgot
//   - want, give, list
//   - proposals, discussions, messages, send, profile
package cli
