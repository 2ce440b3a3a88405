package maven

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"

	"github.com/rrf-tools/nexus-cli/internal/transport"
	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

// IndexExtension is the extension of the index file, asset #1.
const IndexExtension = "txt"

// Asset is one file of the component.
type Asset struct {
	Classifier string
	Extension  string
	LocalPath  string
	Size       int64
}

// SkipReason explains why a directory entry is not uploaded.
type SkipReason string

const (
	SkipDirectory   SkipReason = "sub-directory"
	SkipNoExtension SkipReason = "no extension"
	SkipExcluded    SkipReason = "excluded"
	SkipIrregular   SkipReason = "not a regular file"
)

// Skipped is a directory entry left out of the manifest.
type Skipped struct {
	Name   string
	Reason SkipReason
}

// Manifest lists the assets of one upload. Asset #1 is always the index
// file; Assets holds the others, numbered from 2 in scan order.
type Manifest struct {
	Coordinates Coordinates
	Dir         string
	Assets      []Asset
	Skipped     []Skipped
	// IndexPath is set once the index file has been written.
	IndexPath string
}

// Len is the number of assets including the index file.
func (m *Manifest) Len() int {
	return len(m.Assets) + 1
}

// TotalSize is the combined size of the scanned assets.
func (m *Manifest) TotalSize() int64 {
	var n int64
	for _, a := range m.Assets {
		n += a.Size
	}
	return n
}

// IndexLines returns the remote name of every asset, in asset order.
func (m *Manifest) IndexLines() []string {
	lines := make([]string, 0, len(m.Assets))
	for _, a := range m.Assets {
		lines = append(lines, m.Coordinates.AssetName(a.Classifier, a.Extension))
	}
	return lines
}

// FormFields returns the multipart fields of the Maven2 upload API.
func (m *Manifest) FormFields() []transport.Field {
	fields := []transport.Field{
		{Name: "maven2.groupId", Value: m.Coordinates.GroupID()},
		{Name: "maven2.version", Value: m.Coordinates.Version},
		{Name: "maven2.artifactId", Value: m.Coordinates.ArtifactID},
		transport.FileField("maven2.asset1", m.IndexPath),
		{Name: "maven2.asset1.extension", Value: IndexExtension},
	}
	for i, a := range m.Assets {
		key := "maven2.asset" + strconv.Itoa(i+2)
		fields = append(fields,
			transport.FileField(key, a.LocalPath),
			transport.Field{Name: key + ".classifier", Value: a.Classifier},
			transport.Field{Name: key + ".extension", Value: a.Extension},
		)
	}
	return fields
}

// SplitName splits a file name at its last dot. ok is false when there is
// no extension.
func SplitName(name string) (classifier, extension string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

// IndexFileName is the local name of the index file.
func IndexFileName(artifactID string) string {
	return artifactID + "." + IndexExtension
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewValidationError("exclude", fmt.Sprintf("invalid pattern %q: %v", p, err))
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Scan builds the manifest from the immediate entries of dir, in name
// order. Hidden entries are ignored. Sub-directories, entries that cannot
// be stat'ed, files without an extension and excluded files are recorded
// in Skipped.
func Scan(dir string, coords Coordinates, excludes []string) (*Manifest, error) {
	globs, err := compileExcludes(excludes)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewValidationError("directory", fmt.Sprintf("cannot read %s: %v", dir, err))
	}

	m := &Manifest{Coordinates: coords, Dir: dir}
	indexName := IndexFileName(coords.ArtifactID)

	skip := func(name string, reason SkipReason) {
		m.Skipped = append(m.Skipped, Skipped{Name: name, Reason: reason})
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			log.Warn().Err(err).Str("name", name).Msg("skipping unreadable entry")
			skip(name, SkipIrregular)
			continue
		}

		switch {
		case info.IsDir():
			log.Info().Str("name", name).Msg("skipping sub-directory")
			skip(name, SkipDirectory)
			continue
		case !info.Mode().IsRegular():
			log.Info().Str("name", name).Msg("skipping non regular file")
			skip(name, SkipIrregular)
			continue
		}

		if name == indexName {
			return nil, errors.NewValidationError("directory",
				fmt.Sprintf("%s would be overwritten by the index file, rename it", name))
		}

		classifier, extension, ok := SplitName(name)
		if !ok {
			log.Warn().Str("name", name).Msg("skipping a file without extension")
			skip(name, SkipNoExtension)
			continue
		}

		if matchesAny(globs, name) {
			log.Info().Str("name", name).Msg("skipping excluded file")
			skip(name, SkipExcluded)
			continue
		}

		m.Assets = append(m.Assets, Asset{
			Classifier: classifier,
			Extension:  extension,
			LocalPath:  path,
			Size:       info.Size(),
		})
	}
	return m, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// EncodeIndex renders index lines as file content, one per line.
func EncodeIndex(lines []string) []byte {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// WriteIndex writes the index file into the manifest directory and records
// its path. The caller removes it.
func WriteIndex(m *Manifest) (string, error) {
	path := filepath.Join(m.Dir, IndexFileName(m.Coordinates.ArtifactID))
	if err := os.WriteFile(path, EncodeIndex(m.IndexLines()), 0o644); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(err, "failed to write index file")
	}
	m.IndexPath = path
	return path, nil
}

// ParseIndex returns the asset names listed in an index file's lines.
func ParseIndex(lines []string) []string {
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			names = append(names, l)
		}
	}
	return names
}
