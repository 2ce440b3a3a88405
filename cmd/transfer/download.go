package transfer

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/rrf-tools/nexus-cli/cmd/cmdutils"
	"github.com/rrf-tools/nexus-cli/internal/maven"
	"github.com/rrf-tools/nexus-cli/internal/transport"
)

func NewDownloadCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		coords   coordinateFlags
		dest     string
		noVerify bool
	)
	cmd := &cobra.Command{
		Use:     "download <artifactId>",
		Aliases: []string{"down"},
		Short:   "Download a component uploaded with this tool",
		Long: heredoc.Doc(`
			Download a component previously uploaded with "nexus-cli upload".

			Files are written to "<artifactId>-<version>", which must not exist
			or be empty. The index file is fetched first, then every listed file
			and its md5 checksum in one transfer. Checksums are verified unless
			--no-verify is given.
		`),
		Example: heredoc.Doc(`
			# download <prefix>.ops:report:2.1 into ./report-2.1
			$ nexus-cli download report -g ops -v 2.1

			$ nexus-cli down report -g ops --dest /tmp
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.Config()
			if err != nil {
				return err
			}
			t := transport.Lazy(f.Transport)
			_, err = maven.NewDownloader(cfg, t, f.Reporter()).Download(cmd.Context(), maven.DownloadRequest{
				ArtifactID: args[0],
				Group:      coords.group,
				Version:    coords.version,
				Parent:     dest,
				SkipVerify: noVerify,
			})
			return err
		},
	}

	coords.register(cmd.Flags())
	cmd.Flags().StringVar(&dest, "dest", "", "Parent directory of the download directory (default current directory)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip md5 verification of downloaded files")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}
