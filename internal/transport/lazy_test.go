package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

type staticTransport struct{ calls int }

func (s *staticTransport) Invoke(context.Context, Request) (*Outcome, error) {
	s.calls++
	return &Outcome{HTTPStatus: 200, Statuses: []int{200}}, nil
}

func TestLazy(t *testing.T) {
	builds := 0
	inner := &staticTransport{}
	tr := Lazy(func() (Transport, error) {
		builds++
		return inner, nil
	})
	assert.Zero(t, builds)

	for i := 0; i < 2; i++ {
		_, err := tr.Invoke(context.Background(), Request{URL: "https://h"})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, builds)
	assert.Equal(t, 2, inner.calls)
}

func TestLazyBuildError(t *testing.T) {
	tr := Lazy(func() (Transport, error) {
		return nil, errors.NewConfigError("NEXUS_PASSWD", "not set", nil)
	})
	_, err := tr.Invoke(context.Background(), Request{URL: "https://h"})
	assert.True(t, errors.Is(err, errors.ErrConfig))
}
