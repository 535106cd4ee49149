package exports

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"lingoview/internal/segment"
)

// File points at one written export artifact.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Metadata is the sidecar describing one completed generation run.
type Metadata struct {
	Media               string            `json:"media"`
	Timestamp           string            `json:"timestamp"`
	SourceHash          string            `json:"sourceHash"`
	Language            string            `json:"language"`
	TranslationLanguage string            `json:"translationLanguage,omitempty"`
	Segments            []segment.Segment `json:"segments"`
	TranslatedSegments  []segment.Segment `json:"translatedSegments,omitempty"`
	Exports             map[string]File   `json:"exports"`
	MetadataFile        string            `json:"metadataFile,omitempty"`
}

// ComputeSourceHash hashes a media file's content; the hash keys the
// export cache.
func ComputeSourceHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open media for hashing: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hash media: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Save writes the SRT and JSON exports plus the metadata sidecar into
// dir and returns the metadata describing them.
func Save(dir string, result segment.Result, sourceHash, originalName string) (*Metadata, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	if stem == "" {
		stem = "output"
	}
	stem = strings.ReplaceAll(stem, " ", "_")
	timestamp := time.Now().Format("20060102-150405")
	base := filepath.Join(dir, fmt.Sprintf("%s-%s", stem, timestamp))

	jsonOriginal, err := BuildJSON(result, false)
	if err != nil {
		return nil, err
	}
	outputs := map[string]string{
		"srt_original":  base + ".original.srt",
		"json_original": base + ".original.json",
	}
	contents := map[string]string{
		"srt_original":  BuildSRT(result.Segments),
		"json_original": jsonOriginal,
	}

	if len(result.TranslatedSegments) > 0 {
		jsonTranslation, err := BuildJSON(result, true)
		if err != nil {
			return nil, err
		}
		outputs["srt_translation"] = base + ".translation.srt"
		outputs["json_translation"] = base + ".translation.json"
		contents["srt_translation"] = BuildSRT(result.TranslatedSegments)
		contents["json_translation"] = jsonTranslation
	}

	files := make(map[string]File, len(outputs))
	for key, path := range outputs {
		if err := os.WriteFile(path, []byte(contents[key]), 0o644); err != nil {
			return nil, fmt.Errorf("write export %s: %w", key, err)
		}
		files[key] = File{Name: filepath.Base(path), Path: path}
	}

	meta := &Metadata{
		Media:               originalName,
		Timestamp:           timestamp,
		SourceHash:          sourceHash,
		Language:            result.Language,
		TranslationLanguage: result.TranslationLanguage,
		Segments:            result.Segments,
		TranslatedSegments:  result.TranslatedSegments,
		Exports:             files,
	}

	metadataPath := base + ".metadata.json"
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(metadataPath, encoded, 0o644); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}
	meta.MetadataFile = metadataPath
	return meta, nil
}

// List returns up to limit most recent export metadata entries, newest
// first. Unparseable sidecars are skipped.
func List(dir string, limit int) ([]Metadata, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.metadata.json"))
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	var items []Metadata
	for _, path := range paths {
		if limit > 0 && len(items) >= limit {
			break
		}
		meta, err := ReadMetadata(path)
		if err != nil {
			continue
		}
		items = append(items, *meta)
	}
	return items, nil
}

// FindCached looks for a previous run of the same media and target
// language, returning its metadata when found.
func FindCached(dir, sourceHash, targetLanguage string) (*Metadata, bool) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.metadata.json"))
	if err != nil {
		return nil, false
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	normalizedTarget := strings.ToLower(strings.TrimSpace(targetLanguage))
	for _, path := range paths {
		meta, err := ReadMetadata(path)
		if err != nil {
			continue
		}
		if meta.SourceHash != sourceHash {
			continue
		}
		if strings.ToLower(strings.TrimSpace(meta.TranslationLanguage)) != normalizedTarget {
			continue
		}
		return meta, true
	}
	return nil, false
}

// ReadMetadata loads one metadata sidecar from disk.
func ReadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}
	meta.MetadataFile = path
	return &meta, nil
}
