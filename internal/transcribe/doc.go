// Package transcribe turns audio chunks into timed text fragments.
//
// A backend (OpenAI Whisper over HTTP) transcribes one chunk at a time in
// the chunk's own timeline. The dispatcher fans chunks out with bounded
// parallelism, rate limiting, and retries, shifts fragment times onto the
// recording timeline, and drops hallucinated fragments that fall outside a
// chunk's speech window.
package transcribe
