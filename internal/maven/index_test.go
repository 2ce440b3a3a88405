package maven

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
}

func reportCoords(t *testing.T) Coordinates {
	t.Helper()
	c, err := NewCoordinates("", "ops", "report", "2.1")
	require.NoError(t, err)
	return c
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name       string
		classifier string
		extension  string
		ok         bool
	}{
		{name: "summary.pdf", classifier: "summary", extension: "pdf", ok: true},
		{name: "archive.tar.gz", classifier: "archive.tar", extension: "gz", ok: true},
		{name: "README"},
		{name: "trailing."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier, extension, ok := SplitName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.classifier, classifier)
			assert.Equal(t, tt.extension, extension)
		})
	}
}

func TestScanCountsIndexAsFirstAsset(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.bin", "b.log", "c.tar.gz")

	m, err := Scan(dir, reportCoords(t), nil)
	require.NoError(t, err)
	assert.Len(t, m.Assets, 3)
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, int64(len("a.bin")+len("b.log")+len("c.tar.gz")), m.TotalSize())
}

func TestScanSkips(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, ".hidden.txt", "README", "keep.csv", "skip.tmp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.csv"), filepath.Join(dir, "stale.lnk")))

	m, err := Scan(dir, reportCoords(t), []string{"*.tmp"})
	require.NoError(t, err)

	require.Len(t, m.Assets, 1)
	assert.Equal(t, "keep", m.Assets[0].Classifier)
	assert.ElementsMatch(t, []Skipped{
		{Name: "README", Reason: SkipNoExtension},
		{Name: "skip.tmp", Reason: SkipExcluded},
		{Name: "stale.lnk", Reason: SkipIrregular},
		{Name: "sub", Reason: SkipDirectory},
	}, m.Skipped)
}

func TestScanIndexNameCollision(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report.txt")

	_, err := Scan(dir, reportCoords(t), nil)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestReportScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFiles(t, dir, "summary.pdf", "data.csv", ".DS_Store")

	m, err := Scan(dir, reportCoords(t), nil)
	require.NoError(t, err)

	// directory order is by name
	require.Len(t, m.Assets, 2)
	assert.Equal(t, "data", m.Assets[0].Classifier)
	assert.Equal(t, "csv", m.Assets[0].Extension)
	assert.Equal(t, "summary", m.Assets[1].Classifier)
	assert.Equal(t, "pdf", m.Assets[1].Extension)
	assert.Empty(t, m.Skipped)

	path, err := WriteIndex(m)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report-2.1-data.csv\nreport-2.1-summary.pdf\n", string(data))
}

func TestIndexRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "z.txt", "m.tar.gz", "a.bin")

	m, err := Scan(dir, reportCoords(t), nil)
	require.NoError(t, err)
	path, err := WriteIndex(m)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	assert.Equal(t, m.IndexLines(), ParseIndex(lines))
}

func TestParseIndexIgnoresBlankLines(t *testing.T) {
	assert.Equal(t, []string{"a-1.0-x.txt", "a-1.0-y.bin"},
		ParseIndex([]string{"", " a-1.0-x.txt ", "\t", "a-1.0-y.bin"}))
	assert.Empty(t, ParseIndex(nil))
}

func TestFormFields(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "summary.pdf")

	m, err := Scan(dir, reportCoords(t), nil)
	require.NoError(t, err)
	_, err = WriteIndex(m)
	require.NoError(t, err)

	var got []string
	for _, f := range m.FormFields() {
		got = append(got, f.String())
	}
	assert.Equal(t, []string{
		"maven2.groupId=ops",
		"maven2.version=2.1",
		"maven2.artifactId=report",
		"maven2.asset1=@" + filepath.Join(dir, "report.txt"),
		"maven2.asset1.extension=txt",
		"maven2.asset2=@" + filepath.Join(dir, "summary.pdf"),
		"maven2.asset2.classifier=summary",
		"maven2.asset2.extension=pdf",
	}, got)
}

func TestFormFieldsAtSignName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "@notes.txt")

	m, err := Scan(dir, reportCoords(t), nil)
	require.NoError(t, err)
	require.Len(t, m.Assets, 1)
	assert.Equal(t, "@notes", m.Assets[0].Classifier)
	_, err = WriteIndex(m)
	require.NoError(t, err)

	files := map[string]string{}
	literals := map[string]string{}
	for _, f := range m.FormFields() {
		if f.IsFile() {
			files[f.Name] = f.Path()
			continue
		}
		literals[f.Name] = f.Value
	}
	assert.Equal(t, filepath.Join(dir, "@notes.txt"), files["maven2.asset2"])
	assert.Equal(t, "@notes", literals["maven2.asset2.classifier"])
	assert.NotContains(t, files, "maven2.asset2.classifier")
}

func TestWriteIndexFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{Coordinates: reportCoords(t), Dir: filepath.Join(dir, "missing")}

	_, err := WriteIndex(m)
	require.Error(t, err)
	assert.Empty(t, m.IndexPath)
	assert.NoFileExists(t, filepath.Join(dir, "missing", "report.txt"))
}
