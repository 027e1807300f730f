package log

import (
	"context"
	"testing"

	"github.com/nguyentranbao-ct/storefront/pkg/ctxval"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFieldsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.Replace(zap.New(core))
	t.Cleanup(func() { logger.Replace(nil) })

	ctx := WithFields(context.Background(), "request_id", "req-1")
	Infow(ctx, "cart updated", "product_id", "2")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cart updated", entries[0].Message)
	assert.Equal(t, map[string]any{
		"request_id": "req-1",
		"product_id": "2",
	}, entries[0].ContextMap())
}

func TestWithFieldsOnWrappedContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.Replace(zap.New(core))
	t.Cleanup(func() { logger.Replace(nil) })

	ctx := ctxval.Wrap(context.Background())
	// the returned context is ignored on purpose: wrapped contexts are updated in place
	_ = WithFields(ctx, "request_id", "req-2")
	_ = WithFields(ctx, "session_id", "s-1")

	Warnw(ctx, "no-op")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]any{
		"request_id": "req-2",
		"session_id": "s-1",
	}, entries[0].ContextMap())
}
