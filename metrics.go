package attrcodec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting codec metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordReadAll is called after each ReadAll.
	// attrs is the number of attributes decoded, nbytes their payload bytes.
	RecordReadAll(attrs int, nbytes int64, duration time.Duration, err error)

	// RecordWriteAll is called after each WriteAll.
	// attrs is the number of attribute files written before returning.
	RecordWriteAll(attrs int, nbytes int64, duration time.Duration, err error)

	// RecordReadRowIDs is called after each ReadRowIDs.
	RecordReadRowIDs(rowIDs int, duration time.Duration, err error)

	// RecordReadRange is called after each ReadRange.
	RecordReadRange(nbytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordReadAll(int, int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordWriteAll(int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordReadRowIDs(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordReadRange(int64, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReadAllCount      atomic.Int64
	ReadAllErrors     atomic.Int64
	ReadAllBytes      atomic.Int64
	ReadAllTotalNanos atomic.Int64
	WriteAllCount     atomic.Int64
	WriteAllErrors    atomic.Int64
	WriteAllBytes     atomic.Int64
	WriteAllFiles     atomic.Int64
	ReadRowIDsCount   atomic.Int64
	ReadRowIDsErrors  atomic.Int64
	ReadRangeCount    atomic.Int64
	ReadRangeErrors   atomic.Int64
	ReadRangeBytes    atomic.Int64
}

// RecordReadAll implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReadAll(attrs int, nbytes int64, duration time.Duration, err error) {
	b.ReadAllCount.Add(1)
	b.ReadAllTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadAllErrors.Add(1)
		return
	}
	b.ReadAllBytes.Add(nbytes)
}

// RecordWriteAll implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWriteAll(attrs int, nbytes int64, duration time.Duration, err error) {
	b.WriteAllCount.Add(1)
	b.WriteAllFiles.Add(int64(attrs))
	b.WriteAllBytes.Add(nbytes)
	if err != nil {
		b.WriteAllErrors.Add(1)
	}
}

// RecordReadRowIDs implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReadRowIDs(rowIDs int, duration time.Duration, err error) {
	b.ReadRowIDsCount.Add(1)
	if err != nil {
		b.ReadRowIDsErrors.Add(1)
	}
}

// RecordReadRange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReadRange(nbytes int64, duration time.Duration, err error) {
	b.ReadRangeCount.Add(1)
	if err != nil {
		b.ReadRangeErrors.Add(1)
		return
	}
	b.ReadRangeBytes.Add(nbytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReadAllCount:     b.ReadAllCount.Load(),
		ReadAllErrors:    b.ReadAllErrors.Load(),
		ReadAllBytes:     b.ReadAllBytes.Load(),
		ReadAllAvgNanos:  b.getAvgReadAllNanos(),
		WriteAllCount:    b.WriteAllCount.Load(),
		WriteAllErrors:   b.WriteAllErrors.Load(),
		WriteAllBytes:    b.WriteAllBytes.Load(),
		WriteAllFiles:    b.WriteAllFiles.Load(),
		ReadRowIDsCount:  b.ReadRowIDsCount.Load(),
		ReadRowIDsErrors: b.ReadRowIDsErrors.Load(),
		ReadRangeCount:   b.ReadRangeCount.Load(),
		ReadRangeErrors:  b.ReadRangeErrors.Load(),
		ReadRangeBytes:   b.ReadRangeBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgReadAllNanos() int64 {
	count := b.ReadAllCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReadAllTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReadAllCount     int64
	ReadAllErrors    int64
	ReadAllBytes     int64
	ReadAllAvgNanos  int64
	WriteAllCount    int64
	WriteAllErrors   int64
	WriteAllBytes    int64
	WriteAllFiles    int64
	ReadRowIDsCount  int64
	ReadRowIDsErrors int64
	ReadRangeCount   int64
	ReadRangeErrors  int64
	ReadRangeBytes   int64
}
