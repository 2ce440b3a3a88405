package cmdutils

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rrf-tools/nexus-cli/config"
	nxconfig "github.com/rrf-tools/nexus-cli/internal/config"
	"github.com/rrf-tools/nexus-cli/internal/credentials"
	"github.com/rrf-tools/nexus-cli/internal/terminal"
	"github.com/rrf-tools/nexus-cli/internal/transport"
	"github.com/rrf-tools/nexus-cli/util/common/progress"
)

// Factory builds the collaborators of a command on first use.
type Factory struct {
	Flags *config.GlobalFlags

	Config      func() (nxconfig.Config, error)
	Credentials func() (credentials.Credentials, error)
	Transport   func() (transport.Transport, error)
	Reporter    func() progress.Reporter
}

func NewFactory() *Factory {
	return NewFactoryWithFlags(&config.Global, os.Stdin, os.Stdout)
}

// NewFactoryWithFlags builds a Factory reading flags from flags, prompting
// on in and reporting progress to out.
func NewFactoryWithFlags(flags *config.GlobalFlags, in *os.File, out io.Writer) *Factory {
	f := &Factory{Flags: flags}

	f.Config = sync.OnceValues(func() (nxconfig.Config, error) {
		cfg, err := nxconfig.Resolve(flags.ConfigPath)
		if err != nil {
			return nxconfig.Config{}, err
		}
		cfg = cfg.WithInsecure(flags.Insecure).WithTransport(flags.Transport)
		if err := cfg.Validate(); err != nil {
			return nxconfig.Config{}, err
		}
		log.Debug().
			Str("upload", cfg.UploadEndpoint()).
			Str("download", cfg.DownloadBase()).
			Str("transport", cfg.Transport).
			Bool("verifyTLS", cfg.VerifyTLS).
			Msg("configuration loaded")
		return cfg, nil
	})

	f.Credentials = sync.OnceValues(func() (credentials.Credentials, error) {
		if err := credentials.LoadEnvFile(flags.EnvFile); err != nil {
			return credentials.Credentials{}, err
		}
		var prompter credentials.Prompter = credentials.StreamPrompter{In: in, Out: os.Stderr}
		if in == os.Stdin && terminal.Detect(flags.NoColor).CanPrompt() {
			prompter = credentials.FormPrompter{}
		}
		return credentials.NewResolver(prompter).Resolve(flags.Login, "")
	})

	f.Transport = func() (transport.Transport, error) {
		cfg, err := f.Config()
		if err != nil {
			return nil, err
		}
		creds, err := f.Credentials()
		if err != nil {
			return nil, err
		}
		opts := transport.Options{
			Credentials: creds,
			VerifyTLS:   cfg.VerifyTLS,
			Timeout:     cfg.Timeout,
			Retries:     cfg.Retries,
			RetryDelay:  cfg.RetryDelay,
		}
		switch cfg.Transport {
		case nxconfig.TransportCurl:
			return transport.NewCurl(cfg.CurlPath, opts), nil
		case nxconfig.TransportHTTP:
			return transport.NewHTTP(opts), nil
		default:
			return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
		}
	}

	f.Reporter = func() progress.Reporter {
		return progress.NewWriterReporter(out)
	}
	return f
}
