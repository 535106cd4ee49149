// Package vocals isolates the vocal track from a recording with a Demucs
// subprocess, caching the result by content hash so repeated runs on the
// same media skip the separation.
package vocals
