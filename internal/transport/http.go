package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

// HTTP runs transfers in-process with net/http and go-retryablehttp.
// Brace URLs are expanded locally and fetched one by one.
type HTTP struct {
	Opts Options
	// Client, when set, replaces the underlying http.Client (tests).
	Client *http.Client
}

// NewHTTP returns an HTTP transport.
func NewHTTP(opts Options) *HTTP {
	return &HTTP{Opts: opts}
}

func (h *HTTP) httpClient() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: !h.Opts.VerifyTLS, //nolint:gosec
			},
		},
	}
}

// retryClient returns a client retrying up to retries times with a fixed
// delay. Exhausted retries hand back the last response rather than an
// error so that its status is reported.
func (h *HTTP) retryClient(retries int) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.HTTPClient = h.httpClient()
	c.RetryMax = retries
	c.RetryWaitMin = h.Opts.RetryDelay
	c.RetryWaitMax = h.Opts.RetryDelay
	c.Backoff = func(min, _ time.Duration, _ int, _ *http.Response) time.Duration {
		return min
	}
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.Logger = retryLogger{}
	return c
}

// Invoke performs req.
func (h *HTTP) Invoke(ctx context.Context, req Request) (*Outcome, error) {
	ctx, cancel := withTimeout(ctx, h.Opts.Timeout)
	defer cancel()

	log.Debug().Str("mode", req.Mode()).Str("url", req.URL).Msg("http transfer")

	start := time.Now()
	var (
		outcome *Outcome
		err     error
	)
	switch {
	case len(req.Form) > 0:
		outcome, err = h.upload(ctx, req)
	case req.OutputDir != "":
		outcome, err = h.download(ctx, req)
	default:
		outcome, err = h.fetch(ctx, req)
	}
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &errors.TransportError{
				Op:      "http " + req.Mode(),
				Message: fmt.Sprintf("timed out after %s", h.Opts.Timeout),
				Elapsed: elapsed,
				Wrapped: ctx.Err(),
			}
		}
		return nil, &errors.TransportError{Op: "http " + req.Mode(), Elapsed: elapsed, Wrapped: err}
	}

	outcome.Elapsed = elapsed
	if len(outcome.Statuses) > 0 {
		outcome.HTTPStatus = outcome.Statuses[len(outcome.Statuses)-1]
	}
	if err := CheckAuth(outcome, req.URL); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (h *HTTP) authorize(r *http.Request) {
	if !h.Opts.Credentials.Empty() {
		r.SetBasicAuth(h.Opts.Credentials.Login, h.Opts.Credentials.Password)
	}
}

// upload streams a multipart form. The body cannot be replayed, so the
// request is sent once without retries.
func (h *HTTP) upload(ctx context.Context, req Request) (*Outcome, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeForm(mw, req.Form))
	}()

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	r.Header.Set("Content-Type", mw.FormDataContentType())
	h.authorize(r)

	resp, err := h.httpClient().Do(r)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return &Outcome{ResponseLines: nonBlank(string(body)), Statuses: []int{resp.StatusCode}}, nil
}

func writeForm(mw *multipart.Writer, form []Field) error {
	for _, f := range form {
		if !f.IsFile() {
			if err := mw.WriteField(f.Name, f.Value); err != nil {
				return err
			}
			continue
		}
		if err := writeFilePart(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeFilePart(mw *multipart.Writer, f Field) error {
	file, err := os.Open(f.Path())
	if err != nil {
		return err
	}
	defer file.Close()

	part, err := mw.CreateFormFile(f.Name, filepath.Base(f.Path()))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

// fetch GETs a single URL and returns its body as lines.
func (h *HTTP) fetch(ctx context.Context, req Request) (*Outcome, error) {
	r, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	h.authorize(r.Request)

	resp, err := h.retryClient(0).Do(r)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return &Outcome{ResponseLines: nonBlank(string(body)), Statuses: []int{resp.StatusCode}}, nil
}

// download expands req.URL and stores each 200 response in req.OutputDir
// under the last path segment of its URL. It stops at the first 401/403.
func (h *HTTP) download(ctx context.Context, req Request) (*Outcome, error) {
	urls, err := ExpandBraces(req.URL)
	if err != nil {
		return nil, err
	}

	client := h.retryClient(h.Opts.Retries)
	outcome := &Outcome{}
	for _, u := range urls {
		status, err := h.downloadOne(ctx, client, u, req.OutputDir)
		if err != nil {
			return nil, err
		}
		outcome.Statuses = append(outcome.Statuses, status)
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			break
		}
	}
	return outcome, nil
}

func (h *HTTP) downloadOne(ctx context.Context, client *retryablehttp.Client, rawURL, dir string) (int, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "/" || name == "." {
		return 0, fmt.Errorf("no remote file name in %q", rawURL)
	}

	r, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	h.authorize(r.Request)

	resp, err := client.Do(r)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("file", name).Msg("download skipped")
		return resp.StatusCode, nil
	}

	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", name, err)
	}
	log.Debug().Str("file", name).Int64("bytes", written).Msg("downloaded")
	return resp.StatusCode, nil
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger.
type retryLogger struct{}

func (retryLogger) Error(msg string, kv ...interface{}) { log.Error().Fields(kv).Msg(msg) }
func (retryLogger) Warn(msg string, kv ...interface{})  { log.Warn().Fields(kv).Msg(msg) }
func (retryLogger) Info(msg string, kv ...interface{})  { log.Debug().Fields(kv).Msg(msg) }
func (retryLogger) Debug(msg string, kv ...interface{}) { log.Debug().Fields(kv).Msg(msg) }
