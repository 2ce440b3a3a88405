package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

// Curl runs transfers through the curl command line client.
type Curl struct {
	// Path is the curl executable.
	Path string
	Opts Options
	// Stderr receives curl's progress and diagnostics as they happen.
	Stderr io.Writer
}

// NewCurl returns a Curl transport streaming diagnostics to os.Stderr.
func NewCurl(path string, opts Options) *Curl {
	if path == "" {
		path = "curl"
	}
	return &Curl{Path: path, Opts: opts, Stderr: os.Stderr}
}

// Args builds the curl argument list for req.
func (c *Curl) Args(req Request) []string {
	args := []string{"--parallel", "--write-out", WriteOut}

	if !c.Opts.Credentials.Empty() {
		args = append(args, "-u", c.Opts.Credentials.Login+":"+c.Opts.Credentials.Password)
	}
	if !c.Opts.VerifyTLS {
		args = append(args, "--insecure")
	}

	for _, f := range req.Form {
		if f.File {
			args = append(args, "-F", f.Name+"=@"+quoteFormPath(f.Value))
			continue
		}
		args = append(args, "--form-string", f.Name+"="+f.Value)
	}

	if req.OutputDir != "" {
		args = append(args,
			"--remote-name-all",
			"--retry", strconv.Itoa(c.Opts.Retries),
			"--retry-delay", strconv.Itoa(int(c.Opts.RetryDelay/time.Second)),
			"--output-dir", req.OutputDir,
		)
	}

	return append(args, req.URL)
}

// redact replaces the password in the -u argument for logging.
func (c *Curl) redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "-u" {
			out[i+1] = c.Opts.Credentials.String()
		}
	}
	return out
}

// Invoke runs curl once. Stdout is parsed for status trailers; stderr is
// streamed to c.Stderr and kept for error reports.
func (c *Curl) Invoke(ctx context.Context, req Request) (*Outcome, error) {
	ctx, cancel := withTimeout(ctx, c.Opts.Timeout)
	defer cancel()

	args := c.Args(req)
	log.Debug().Str("mode", req.Mode()).Strs("args", c.redact(args)).Msg("running curl")

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, c.Path, args...)
	command.WaitDelay = 5 * time.Second
	command.Stdout = &stdout
	if c.Stderr != nil {
		command.Stderr = io.MultiWriter(c.Stderr, &stderr)
	} else {
		command.Stderr = &stderr
	}

	start := time.Now()
	err := command.Run()
	elapsed := time.Since(start)

	log.Debug().
		Err(err).
		Dur("elapsed", elapsed).
		Str("stdout", stdout.String()).
		Msg("curl finished")

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &errors.TransportError{
				Op:      "curl",
				Message: fmt.Sprintf("timed out after %s", c.Opts.Timeout),
				Elapsed: elapsed,
				Wrapped: ctx.Err(),
			}
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, &errors.TransportError{
				Op:       "curl",
				Message:  strings.TrimSpace(stderr.String()),
				ExitCode: exitErr.ExitCode(),
				Elapsed:  elapsed,
				Output:   nonBlank(stdout.String()),
			}
		}
		return nil, errors.NewTransportError("curl", fmt.Errorf("failed to start %s: %w", c.Path, err))
	}

	lines, statuses, err := ParseOutput(stdout.String())
	if err != nil {
		return nil, &errors.TransportError{Op: "curl", Elapsed: elapsed, Output: lines, Wrapped: err}
	}

	outcome := &Outcome{
		ResponseLines: lines,
		HTTPStatus:    statuses[len(statuses)-1],
		Statuses:      statuses,
		Elapsed:       elapsed,
	}
	if err := CheckAuth(outcome, req.URL); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// quoteFormPath double-quotes a path that curl would otherwise split at
// ';' or ','.
func quoteFormPath(p string) string {
	if !strings.ContainsAny(p, `;,"\`) {
		return p
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(p) + `"`
}

func nonBlank(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
