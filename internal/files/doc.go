// Package files reads the dashboard's CSV snapshot from disk and reports
// when it changes.
//
// Loader resolves a single configured path and returns its bytes on every
// call. Watcher observes the parent directory with fsnotify and invokes a
// callback after a debounced burst of writes, creates, removes or renames of
// that file.
package files
