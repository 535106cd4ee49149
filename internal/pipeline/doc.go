// Package pipeline drives a full generation run: vocal separation,
// chunking, transcription, consolidation, tokenization, optional
// translation, the final dedup pass, and export persistence.
package pipeline
