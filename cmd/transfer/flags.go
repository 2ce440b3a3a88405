package transfer

import (
	"github.com/spf13/pflag"

	"github.com/rrf-tools/nexus-cli/internal/maven"
)

// coordinateFlags are the flags shared by upload and download.
type coordinateFlags struct {
	group   string
	version string
}

func (c *coordinateFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.group, "group", "g", "", "Sub-group appended to the configured group prefix")
	fs.StringVarP(&c.version, "version", "v", maven.DefaultVersion, "Component version")
}
