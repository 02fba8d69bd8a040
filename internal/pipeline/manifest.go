package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/confluentinc/data-tools/pkg/datatools"
)

// Manifest is the machine-readable record of one run, written to the output
// directory for downstream load verification.
type Manifest struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Files       []ManifestEntry `json:"files"`
}

// ManifestEntry describes one successfully transformed file.
type ManifestEntry struct {
	Path            string `json:"path"`
	Records         int    `json:"records"`
	ChecksumRaw     string `json:"checksum_raw"`
	ChecksumContent string `json:"checksum_content"`
}

// writeManifest publishes manifest.json in outputDir, listing succeeded
// tasks in summary order (sorted by path).
func (p *Pipeline) writeManifest(outputDir string, summary *datatools.RunSummary) error {
	manifest := Manifest{
		RunID:       summary.RunID.String(),
		GeneratedAt: time.Now().UTC(),
		Files:       []ManifestEntry{},
	}

	for _, r := range summary.Results {
		if r.Status != datatools.TaskSucceeded {
			continue
		}
		manifest.Files = append(manifest.Files, ManifestEntry{
			Path:            r.RelativePath,
			Records:         r.Records,
			ChecksumRaw:     r.ChecksumRaw,
			ChecksumContent: r.ChecksumContent,
		})
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	data = append(data, '\n')

	manifestPath := filepath.Join(outputDir, datatools.ManifestFileName)
	if err := p.fsProvider.WriteFile(manifestPath, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}

	return nil
}
