package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PickRank/pkg/config"
	xhttp "PickRank/pkg/http"
	applogger "PickRank/pkg/logger"
)

type closeCounter struct{ n int }

func (c *closeCounter) Close() error {
	c.n++
	return nil
}

func TestRunContextShutsDownAndClosesClients(t *testing.T) {
	cfg, err := config.LoadDefault()
	require.NoError(t, err)

	log := applogger.NewNop()
	srv := xhttp.NewServer(log, nil, xhttp.WithPort(0), xhttp.WithMetricsPath(""))
	closer := &closeCounter{}
	app := New(cfg, log, srv, closer, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, app.RunContext(ctx))
	assert.Equal(t, 1, closer.n)
}
