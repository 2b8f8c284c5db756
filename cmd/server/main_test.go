package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubServer struct {
	err    error
	called bool
}

func (s *stubServer) Shutdown(context.Context) error {
	s.called = true
	return s.err
}

func TestShutdown_LogsMetricsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	api := &stubServer{}
	metrics := &stubServer{err: errors.New("listener stuck")}

	err := shutdown(context.Background(), logger, api, metrics)

	assert.NoError(t, err)
	assert.True(t, api.called)
	assert.Contains(t, buf.String(), "metrics server shutdown failed")
	assert.Contains(t, buf.String(), "listener stuck")
}

func TestShutdown_ReturnsAPIError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	apiErr := errors.New("api stuck")

	err := shutdown(context.Background(), logger, &stubServer{err: apiErr}, &stubServer{})

	assert.ErrorIs(t, err, apiErr)
	assert.Empty(t, buf.String())
}
