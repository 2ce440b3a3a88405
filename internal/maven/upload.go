package maven

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rrf-tools/nexus-cli/internal/config"
	"github.com/rrf-tools/nexus-cli/internal/transport"
	"github.com/rrf-tools/nexus-cli/util/common"
	"github.com/rrf-tools/nexus-cli/util/common/errors"
	"github.com/rrf-tools/nexus-cli/util/common/progress"
)

// UploadRequest is the input of one upload.
type UploadRequest struct {
	Directory string
	Group     string
	Version   string
	// Exclude holds glob patterns matched against file names.
	Exclude []string
	// DryRun builds and writes the index but skips the transfer.
	DryRun bool
}

// UploadResult describes a finished upload.
type UploadResult struct {
	Coordinates Coordinates
	Manifest    *Manifest
	URL         string
	Elapsed     time.Duration
}

// Uploader uploads a directory as one Maven2 component.
type Uploader struct {
	cfg       config.Config
	transport transport.Transport
	reporter  progress.Reporter
}

// NewUploader returns an Uploader. A nil reporter discards progress.
func NewUploader(cfg config.Config, t transport.Transport, r progress.Reporter) *Uploader {
	if r == nil {
		r = progress.NewNopReporter()
	}
	return &Uploader{cfg: cfg, transport: t, reporter: r}
}

// cleanDirectory trims separators around a directory argument. The root
// of an absolute path is kept.
func cleanDirectory(p string) string {
	trimmed := strings.TrimRight(p, `/\`)
	if filepath.IsAbs(p) {
		if trimmed == "" {
			return p[:1]
		}
		return trimmed
	}
	return strings.TrimLeft(trimmed, `/\`)
}

// Upload validates the directory, writes the index file, sends every asset
// in one multipart request and removes the index file on every path.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	dir := cleanDirectory(req.Directory)
	log.Info().Str("directory", dir).Msg("upload")

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewValidationError("directory", fmt.Sprintf("%s: not found", req.Directory))
		}
		return nil, errors.NewValidationError("directory", err.Error())
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("directory", fmt.Sprintf("%s: must be a directory", dir))
	}

	artifactID := filepath.Base(dir)
	if strings.Contains(artifactID, ".") {
		return nil, errors.NewValidationError("artifactId",
			fmt.Sprintf("artifactId must not contain a dot: %q", artifactID))
	}
	if strings.ContainsAny(artifactID, `/\`) {
		return nil, errors.NewValidationError("artifactId", fmt.Sprintf("invalid artifactId %q", artifactID))
	}

	coords, err := NewCoordinates(u.cfg.GroupPrefix, req.Group, artifactID, req.Version)
	if err != nil {
		return nil, err
	}

	u.reporter.Start(fmt.Sprintf("Uploading %s to %s", dir, coords.RepositoryPath()))

	manifest, err := Scan(dir, coords, req.Exclude)
	if err != nil {
		return nil, err
	}
	for _, s := range manifest.Skipped {
		if s.Reason == SkipNoExtension {
			u.reporter.Warn(fmt.Sprintf("skipping a file without extension: %s", s.Name))
		}
	}

	indexPath, err := WriteIndex(manifest)
	if err != nil {
		return nil, err
	}
	defer removeIndex(indexPath)

	result := &UploadResult{Coordinates: coords, Manifest: manifest, URL: u.cfg.UploadEndpoint()}

	if req.DryRun {
		for _, f := range manifest.FormFields() {
			u.reporter.Step(f.String())
		}
		u.reporter.Success(fmt.Sprintf("dry run: %d assets would be sent to %s", manifest.Len(), result.URL))
		return result, nil
	}

	u.reporter.Step(fmt.Sprintf("Sending %d assets (%s)", manifest.Len(), common.GetSize(manifest.TotalSize())))

	outcome, err := u.transport.Invoke(ctx, transport.Request{
		URL:  result.URL,
		Form: manifest.FormFields(),
	})
	if err != nil {
		u.reporter.Error("upload failed")
		return nil, err
	}
	result.Elapsed = outcome.Elapsed

	if outcome.HTTPStatus != http.StatusNoContent {
		u.reporter.Error("upload failed")
		return nil, errors.NewStatusError("upload",
			fmt.Sprintf("status %d != %d", outcome.HTTPStatus, http.StatusNoContent),
			outcome.HTTPStatus, outcome.Elapsed, outcome.ResponseLines)
	}

	u.reporter.Success(fmt.Sprintf("upload OK (%s)", common.FormatElapsed(outcome.Elapsed)))
	return result, nil
}

func removeIndex(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("failed to remove index file")
		return
	}
	log.Debug().Str("path", path).Msg("removed index file")
}
