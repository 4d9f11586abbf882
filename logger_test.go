package attrcodec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Successful operations log at debug and are filtered out.
	l.LogReadAll(ctx, 1, 0, 4, nil)
	l.LogWriteAll(ctx, 1, 4, nil)
	assert.Empty(t, buf.String())

	l.WithDirectory("/seg").WithField("age").LogReadRange(ctx, 2, 10, 0, 0, errors.New("boom"))
	out := buf.String()
	assert.Contains(t, out, "read range failed")
	assert.Contains(t, out, "directory=/seg")
	assert.Contains(t, out, "field=age")
	assert.Contains(t, out, "error=boom")
}

func TestLogger_Noop(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogReadRowIDs(context.Background(), 1, 2, errors.New("ignored"))
}

func TestOptions(t *testing.T) {
	o := applyOptions(nil)
	assert.Equal(t, DefaultAttributeExtension, o.attrExt)
	assert.Equal(t, DefaultRowIDExtension, o.rowIDExt)
	assert.Equal(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.Nil(t, o.resources)
	assert.Empty(t, o.rowIDFile)

	o = applyOptions([]Option{
		WithLogLevel(slog.LevelDebug),
		WithMetricsCollector(nil),
		WithRowIDExtension("ids"),
		nil,
	})
	assert.True(t, o.logger.Enabled(context.Background(), slog.LevelDebug))
	assert.Equal(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.Equal(t, ".ids", o.rowIDExt)

	o = applyOptions([]Option{WithLogger(nil)})
	require.NotNil(t, o.logger)
	assert.False(t, o.logger.Enabled(context.Background(), slog.LevelError))
}

func TestBasicMetricsCollector_Stats(t *testing.T) {
	m := &BasicMetricsCollector{}
	m.RecordReadAll(2, 10, 2*time.Millisecond, nil)
	m.RecordReadAll(0, 0, 4*time.Millisecond, errors.New("boom"))
	m.RecordReadRowIDs(3, time.Millisecond, errors.New("boom"))
	m.RecordReadRange(5, time.Millisecond, nil)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.ReadAllCount)
	assert.Equal(t, int64(1), stats.ReadAllErrors)
	assert.Equal(t, int64(10), stats.ReadAllBytes)
	assert.Equal(t, int64(3*time.Millisecond), stats.ReadAllAvgNanos)
	assert.Equal(t, int64(1), stats.ReadRowIDsErrors)
	assert.Equal(t, int64(5), stats.ReadRangeBytes)
}
