// Package preflight verifies the runtime environment before a
// generation run: storage directories, external binaries, and API
// credentials.
package preflight
