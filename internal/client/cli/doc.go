// Package cli implements the interactive terminal front end of the vaiti
// client. It owns only presentation: prompts, rendering and the REPL loop.
// All state lives in the services package; command handlers call a store
// operation and print the resulting snapshot.
package cli
