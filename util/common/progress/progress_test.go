package progress

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestWriterReporter(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	r := NewWriterReporter(&buf)
	r.Start("Uploading report")
	r.Step("Writing index")
	r.Warn("skipping README")
	r.Error("upload failed")
	r.Success("upload OK")

	out := buf.String()
	for _, want := range []string{"Uploading report...", "Writing index...", "skipping README", "upload failed", "upload OK"} {
		assert.Contains(t, out, want)
	}
}

func TestNopReporter(t *testing.T) {
	var r Reporter = NewNopReporter()
	assert.NotPanics(t, func() {
		r.Start("a")
		r.Step("b")
		r.Warn("c")
		r.Error("d")
		r.Success("e")
	})
}
