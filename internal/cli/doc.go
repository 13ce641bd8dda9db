// Package cli wires the shell together and owns the terminal session: it
// opens the debug log and the contact cache, fills the cache from the cards
// directory, starts the watcher and runs the bubbletea program until the
// user exits.
package cli
