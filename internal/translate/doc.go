// Package translate renders subtitle text into a target language through
// an ordered chain of LLM providers.
//
// Providers are tried in sequence; a provider failure moves to the next
// one, and with no configured or working provider the source text passes
// through untranslated. Token usage is tracked per provider, both as
// process totals and per generation session.
package translate
