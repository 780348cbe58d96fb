// Package cli provides the interactive ViviGo command-line client.
//
// It is the render layer over services.SessionManager: it prompts for
// credentials, prints session transitions as they happen and asks the
// guard before opening a view. A background watcher keeps the session
// fresh while the REPL runs.
//
// The REPL is started via App.Run(ctx, interval), which blocks until the
// user exits. See runREPL for the command list.
package cli
