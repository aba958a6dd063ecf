// Package main hosts the plexmissing CLI entrypoint and command graph.
//
// The Cobra command tree offers setup, run and list. Configuration is resolved
// once per invocation; when no configuration file exists every command except
// setup offers to create one first. Report lines go to stdout while logs and
// run summaries go to stderr, so the console report can be piped cleanly.
package main
