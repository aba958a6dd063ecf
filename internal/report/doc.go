// Package report renders per-collection results to the console and to one
// text file per library.
//
// Each library report is truncated when it begins, so re-running against an
// unchanged server produces identical files. Every line is appended with its
// own open/write/close cycle. Dry-run writers print the same console lines but
// never touch the filesystem. The Lock type guards an output directory with a
// flock so two runs cannot interleave their reports.
package report
