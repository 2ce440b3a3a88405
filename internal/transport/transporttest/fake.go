// Package transporttest provides a scripted Transport for tests.
package transporttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/rrf-tools/nexus-cli/internal/transport"
)

// Response is one scripted reply.
type Response struct {
	Outcome *transport.Outcome
	Err     error
	// Hook runs during Invoke, before the reply is returned.
	Hook func(req transport.Request)
}

// Fake replays Responses in order and records every request.
type Fake struct {
	mu        sync.Mutex
	responses []Response
	Requests  []transport.Request
}

// New returns a Fake that will reply with responses in order.
func New(responses ...Response) *Fake {
	return &Fake{responses: responses}
}

// Status is a shorthand Response with a single status and body lines.
func Status(code int, lines ...string) Response {
	return Response{Outcome: &transport.Outcome{
		ResponseLines: lines,
		HTTPStatus:    code,
		Statuses:      []int{code},
	}}
}

func (f *Fake) Invoke(_ context.Context, req transport.Request) (*transport.Outcome, error) {
	f.mu.Lock()
	f.Requests = append(f.Requests, req)
	n := len(f.Requests)
	if n > len(f.responses) {
		f.mu.Unlock()
		return nil, fmt.Errorf("transporttest: unexpected call %d to %s", n, req.URL)
	}
	resp := f.responses[n-1]
	f.mu.Unlock()

	if resp.Hook != nil {
		resp.Hook(req)
	}
	if resp.Outcome != nil && resp.Err == nil {
		if err := transport.CheckAuth(resp.Outcome, req.URL); err != nil {
			return resp.Outcome, err
		}
	}
	return resp.Outcome, resp.Err
}

// Calls returns the number of recorded requests.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}
