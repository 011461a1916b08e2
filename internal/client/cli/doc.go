// Package cli is the interactive JobKeeper terminal client.
//
// App wires the device database, the data facade, settings and PIN
// services and the backend client, then runs a line-oriented REPL
// (see runREPL). A background watcher pings the backend and switches
// between online and offline mode; everything except job notes and
// attachment uploads works offline.
//
// Records are addressed by id or by any unique id prefix, as printed in
// the list commands.
package cli
