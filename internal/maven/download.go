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

// DownloadRequest is the input of one download.
type DownloadRequest struct {
	ArtifactID string
	Group      string
	Version    string
	// Parent is the directory in which "<artifactId>-<version>" is created.
	// Empty means the current directory.
	Parent string
	// SkipVerify disables md5 verification of the downloaded files.
	SkipVerify bool
}

// DownloadResult describes a finished download.
type DownloadResult struct {
	Coordinates Coordinates
	Dir         string
	Files       []string
	Elapsed     time.Duration
}

// Downloader fetches a component uploaded by Uploader.
type Downloader struct {
	cfg       config.Config
	transport transport.Transport
	reporter  progress.Reporter
}

// NewDownloader returns a Downloader. A nil reporter discards progress.
func NewDownloader(cfg config.Config, t transport.Transport, r progress.Reporter) *Downloader {
	if r == nil {
		r = progress.NewNopReporter()
	}
	return &Downloader{cfg: cfg, transport: t, reporter: r}
}

// prepareDest creates dir, or accepts it when it already exists empty.
// created reports whether it was created by this call.
func prepareDest(dir string) (created bool, err error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, errors.NewValidationError("destination", fmt.Sprintf("%s exists and is not a directory", dir))
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return false, errors.NewValidationError("destination", err.Error())
		}
		if len(entries) != 0 {
			return false, errors.NewValidationError("destination", fmt.Sprintf("%s: destination exists and is not empty", dir))
		}
		return false, nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, errors.Wrap(err, "failed to create destination directory")
		}
		return true, nil
	default:
		return false, errors.NewValidationError("destination", err.Error())
	}
}

// checkIndexNames rejects names that cannot be fetched as plain files.
func checkIndexNames(names []string) error {
	for _, n := range names {
		if strings.ContainsAny(n, `/\{},`) || n == "." || n == ".." {
			return errors.NewValidationError("index", fmt.Sprintf("invalid entry %q", n))
		}
	}
	return nil
}

// Download fetches the index file, then every listed file and its md5
// companion in one transfer into "<artifactId>-<version>".
func (d *Downloader) Download(ctx context.Context, req DownloadRequest) (result *DownloadResult, err error) {
	coords, err := NewCoordinates(d.cfg.GroupPrefix, req.Group, req.ArtifactID, req.Version)
	if err != nil {
		return nil, err
	}

	parent := req.Parent
	if parent == "" {
		parent = "."
	}
	dest := filepath.Join(parent, coords.BaseName())
	log.Info().Str("destination", dest).Msg("download")

	created, err := prepareDest(dest)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && created {
			// only succeeds while the directory is still empty
			if rmErr := os.Remove(dest); rmErr == nil {
				log.Debug().Str("path", dest).Msg("removed empty destination")
			}
		}
	}()

	d.reporter.Start(fmt.Sprintf("Downloading %s to %s", coords, dest))

	base := d.cfg.DownloadBase() + "/" + coords.RepositoryPath()
	indexURL := base + "/" + coords.BaseName() + "." + IndexExtension

	d.reporter.Step("Fetching index file")
	outcome, err := d.transport.Invoke(ctx, transport.Request{URL: indexURL})
	if err != nil {
		d.reporter.Error("download failed")
		return nil, err
	}
	if outcome.HTTPStatus != http.StatusOK {
		d.reporter.Error("download failed")
		return nil, errors.NewStatusError("download",
			"directory or index file not found, was it uploaded with this tool?",
			outcome.HTTPStatus, outcome.Elapsed, nil)
	}

	names := ParseIndex(outcome.ResponseLines)
	if len(names) == 0 {
		return nil, errors.NewValidationError("index", "nothing to download: index is empty")
	}
	if err := checkIndexNames(names); err != nil {
		return nil, err
	}
	elapsed := outcome.Elapsed

	checksums := make([]string, 0, len(names))
	for _, n := range names {
		checksums = append(checksums, n+ChecksumExtension)
	}

	d.reporter.Step(fmt.Sprintf("Fetching %d files and their checksums", len(names)))
	outcome, err = d.transport.Invoke(ctx, transport.Request{
		URL:       transport.BraceURL(base, append(checksums, names...)),
		OutputDir: dest,
	})
	if err != nil {
		d.reporter.Error("download failed")
		return nil, err
	}
	elapsed += outcome.Elapsed
	if !outcome.AllStatus(http.StatusOK) {
		d.reporter.Error("download failed")
		status := outcome.FirstOther(http.StatusOK)
		return nil, errors.NewStatusError("download",
			fmt.Sprintf("status %d != %d", status, http.StatusOK),
			status, elapsed, outcome.ResponseLines)
	}

	if !req.SkipVerify {
		d.reporter.Step("Verifying checksums")
		if err := d.verify(dest, names); err != nil {
			d.reporter.Error("checksum verification failed")
			return nil, err
		}
	}

	d.reporter.Success(fmt.Sprintf("download OK (%s)", common.FormatElapsed(elapsed)))
	return &DownloadResult{Coordinates: coords, Dir: dest, Files: names, Elapsed: elapsed}, nil
}

func (d *Downloader) verify(dir string, names []string) error {
	for _, n := range names {
		path := filepath.Join(dir, n)
		sumPath := path + ChecksumExtension
		if _, err := os.Stat(sumPath); os.IsNotExist(err) {
			d.reporter.Warn(fmt.Sprintf("no checksum for %s, not verified", n))
			continue
		}
		if err := VerifyMD5(path, sumPath); err != nil {
			return err
		}
		log.Debug().Str("file", n).Msg("checksum OK")
	}
	return nil
}
