package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/fpdf/internal/analyzer"
	"github.com/coregx/fpdf/internal/config"
	"github.com/coregx/fpdf/internal/pool"
	"github.com/coregx/fpdf/internal/store"
)

func newTestPool(workers int) *Pool {
	return New(workers, pool.New(), analyzer.New(config.AnalyzerConfig{}), store.New(""), "text", nil)
}

func TestRun_OrdersResultsByInputIndex(t *testing.T) {
	p := newTestPool(4)
	paths := []string{"/no/such/a.pdf", "/no/such/b.pdf", "/no/such/c.pdf"}

	results := p.Run(context.Background(), paths)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, paths[i], r.Path)
		assert.Error(t, r.Err) // none of these paths exist
		assert.False(t, r.Cancelled)
	}
	assert.Equal(t, int64(3), p.Completed())
}

func TestRun_CancelledContextSkipsUnstartedWork(t *testing.T) {
	p := newTestPool(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := p.Run(ctx, []string{"/no/such/a.pdf", "/no/such/b.pdf"})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Cancelled)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	p := newTestPool(2)
	results := p.Run(context.Background(), nil)
	assert.Empty(t, results)
	assert.Equal(t, int64(0), p.Completed())
}

func TestNew_ClampsWorkersAndNilLogger(t *testing.T) {
	p := New(0, pool.New(), analyzer.New(config.AnalyzerConfig{}), store.New(""), "text", nil)
	assert.Equal(t, 1, p.Workers)
	require.NotNil(t, p.Log)
}
