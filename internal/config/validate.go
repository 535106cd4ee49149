package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable for any command. Values a
// single command needs (e.g. the Whisper API key for generation) are
// checked where that command wires them up, so read-only commands work
// without credentials.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateChunking(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StorageDir) == "" {
		return errors.New("paths.storage_dir is required")
	}
	return nil
}

// validateChunking runs after normalize, which already clamps the chunk
// duration and overlap to their individual ranges. Only the cross-field
// relation can still be violated here.
func (c *Config) validateChunking() error {
	if float64(c.Chunking.MaxChunkSeconds) <= c.Chunking.OverlapSeconds*2 {
		return fmt.Errorf("chunking.max_chunk_seconds (%d) must exceed twice the overlap (%g)",
			c.Chunking.MaxChunkSeconds, c.Chunking.OverlapSeconds)
	}
	return nil
}
