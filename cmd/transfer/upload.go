package transfer

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/rrf-tools/nexus-cli/cmd/cmdutils"
	"github.com/rrf-tools/nexus-cli/internal/maven"
	"github.com/rrf-tools/nexus-cli/internal/transport"
)

func NewUploadCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		coords  coordinateFlags
		exclude []string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:     "upload <directory>",
		Aliases: []string{"up"},
		Short:   "Upload a directory as a Maven2 component",
		Long: heredoc.Doc(`
			Upload every file of a directory as one Maven2 component.

			The directory name is the artifactId and must not contain a dot.
			Each file becomes an asset whose classifier is the file name without
			its extension. Hidden files, sub-directories and files without an
			extension are skipped. An index file listing the assets is uploaded
			as the main asset so that the component can be downloaded back.
		`),
		Example: heredoc.Doc(`
			# upload ./report as <prefix>.ops:report:2.1
			$ nexus-cli upload report -g ops -v 2.1

			# show what would be sent
			$ nexus-cli up report -g ops --dry-run --exclude '*.tmp'
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.Config()
			if err != nil {
				return err
			}
			t := transport.Lazy(f.Transport)
			_, err = maven.NewUploader(cfg, t, f.Reporter()).Upload(cmd.Context(), maven.UploadRequest{
				Directory: args[0],
				Group:     coords.group,
				Version:   coords.version,
				Exclude:   exclude,
				DryRun:    dryRun,
			})
			return err
		},
	}

	coords.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob pattern of file names to skip (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build the index and print the form fields without uploading")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}
