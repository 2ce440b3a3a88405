// Package transport performs the HTTP transfers against the repository.
//
// A Transport runs one transfer per call: a multipart upload when the
// request carries form fields, a bulk download into a directory when it
// carries an output directory, and a plain text fetch otherwise.
package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rrf-tools/nexus-cli/internal/credentials"
	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

// Field is one multipart form field. Order is preserved on the wire.
// Value is sent as-is unless File is set, in which case it is the path of
// a local file streamed as the field body.
type Field struct {
	Name  string
	Value string
	File  bool
}

// FileField returns a field whose body is the file at path.
func FileField(name, path string) Field {
	return Field{Name: name, Value: path, File: true}
}

// IsFile reports whether the value references a local file.
func (f Field) IsFile() bool {
	return f.File
}

// Path returns the referenced file path, or "" for literal fields.
func (f Field) Path() string {
	if !f.File {
		return ""
	}
	return f.Value
}

// String renders the field as curl would show it: name=@path for files.
func (f Field) String() string {
	if f.File {
		return f.Name + "=@" + f.Value
	}
	return f.Name + "=" + f.Value
}

// Request describes one transfer.
type Request struct {
	URL string
	// Form switches the transfer to a multipart POST.
	Form []Field
	// OutputDir switches the transfer to a download that stores every
	// fetched URL under its remote file name, with retries.
	OutputDir string
}

// Mode names the kind of transfer for logs and errors.
func (r Request) Mode() string {
	switch {
	case len(r.Form) > 0:
		return "upload"
	case r.OutputDir != "":
		return "download"
	default:
		return "fetch"
	}
}

// Outcome is the result of one transfer.
type Outcome struct {
	// ResponseLines holds the non-blank response lines, trimmed.
	ResponseLines []string
	// HTTPStatus is the last status reported.
	HTTPStatus int
	// Statuses holds every reported status in order; multi-URL transfers
	// report one per URL.
	Statuses []int
	Elapsed  time.Duration
}

// AllStatus reports whether every status equals code.
func (o *Outcome) AllStatus(code int) bool {
	if len(o.Statuses) == 0 {
		return o.HTTPStatus == code
	}
	for _, s := range o.Statuses {
		if s != code {
			return false
		}
	}
	return true
}

// FirstOther returns the first status that differs from code, or code.
func (o *Outcome) FirstOther(code int) int {
	for _, s := range o.Statuses {
		if s != code {
			return s
		}
	}
	if o.HTTPStatus != code {
		return o.HTTPStatus
	}
	return code
}

// Transport executes transfers.
type Transport interface {
	Invoke(ctx context.Context, req Request) (*Outcome, error)
}

// Options are shared by every Transport implementation.
type Options struct {
	Credentials credentials.Credentials
	VerifyTLS   bool
	Timeout     time.Duration
	Retries     int
	RetryDelay  time.Duration
}

// CheckAuth returns an AuthenticationError when any status is 401 or 403.
func CheckAuth(o *Outcome, url string) error {
	statuses := o.Statuses
	if len(statuses) == 0 {
		statuses = []int{o.HTTPStatus}
	}
	for _, s := range statuses {
		if s == http.StatusUnauthorized || s == http.StatusForbidden {
			return errors.NewAuthenticationError(s, url)
		}
	}
	return nil
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Lazy returns a Transport that calls build on the first Invoke and reuses
// its result.
func Lazy(build func() (Transport, error)) Transport {
	return &lazy{build: build}
}

type lazy struct {
	once  sync.Once
	build func() (Transport, error)
	t     Transport
	err   error
}

func (l *lazy) Invoke(ctx context.Context, req Request) (*Outcome, error) {
	l.once.Do(func() { l.t, l.err = l.build() })
	if l.err != nil {
		return nil, l.err
	}
	return l.t.Invoke(ctx, req)
}
