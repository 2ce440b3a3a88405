package maven

import (
	"fmt"
	"strings"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

// DefaultVersion is used when no version is given.
const DefaultVersion = "1.0"

// Coordinates identify a Maven2 component.
type Coordinates struct {
	GroupPrefix string
	Group       string
	ArtifactID  string
	Version     string
}

// NewCoordinates validates and returns coordinates. An empty version
// becomes DefaultVersion.
func NewCoordinates(prefix, group, artifactID, version string) (Coordinates, error) {
	if version == "" {
		version = DefaultVersion
	}
	c := Coordinates{
		GroupPrefix: strings.Trim(prefix, "."),
		Group:       strings.Trim(group, "."),
		ArtifactID:  artifactID,
		Version:     version,
	}
	if c.GroupID() == "" {
		return Coordinates{}, errors.NewValidationError("groupId", "must not be empty")
	}
	if artifactID == "" {
		return Coordinates{}, errors.NewValidationError("artifactId", "must not be empty")
	}
	if strings.Contains(artifactID, ".") {
		return Coordinates{}, errors.NewValidationError("artifactId", "artifactId must not contain a dot")
	}
	if strings.ContainsAny(version, "/\\") {
		return Coordinates{}, errors.NewValidationError("version", "must not contain a path separator")
	}
	return c, nil
}

// GroupID joins the prefix and the group with a dot.
func (c Coordinates) GroupID() string {
	switch {
	case c.GroupPrefix == "":
		return c.Group
	case c.Group == "":
		return c.GroupPrefix
	default:
		return c.GroupPrefix + "." + c.Group
	}
}

// GroupPath is the groupId as a repository path (dots become slashes).
func (c Coordinates) GroupPath() string {
	return strings.ReplaceAll(c.GroupID(), ".", "/")
}

// BaseName is "<artifactId>-<version>": the remote name of the index file
// without extension and the local download directory.
func (c Coordinates) BaseName() string {
	return c.ArtifactID + "-" + c.Version
}

// AssetName is the remote file name Nexus gives an asset.
func (c Coordinates) AssetName(classifier, extension string) string {
	return fmt.Sprintf("%s-%s-%s.%s", c.ArtifactID, c.Version, classifier, extension)
}

// RepositoryPath is "<group/path>/<artifactId>/<version>".
func (c Coordinates) RepositoryPath() string {
	return c.GroupPath() + "/" + c.ArtifactID + "/" + c.Version
}

func (c Coordinates) String() string {
	return c.GroupID() + ":" + c.ArtifactID + ":" + c.Version
}
