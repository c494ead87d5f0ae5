package semvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordSave is called after each save operation.
	// count is the number of records attempted, duration the total time
	// including the embedding call, err is nil if successful.
	RecordSave(count int, duration time.Duration, err error)

	// RecordFetch is called after each fetch operation.
	// semantic reports whether an embedding lookup was involved.
	RecordFetch(semantic bool, results int, duration time.Duration, err error)

	// RecordDelete is called after each delete operation.
	RecordDelete(count int, duration time.Duration, err error)

	// RecordTransaction is called after each transaction attempt,
	// successful or not.
	RecordTransaction(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordFetch(bool, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDelete(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordTransaction(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SaveCount        atomic.Int64
	SaveRecords      atomic.Int64
	SaveErrors       atomic.Int64
	SaveTotalNanos   atomic.Int64
	FetchCount       atomic.Int64
	FetchSemantic    atomic.Int64
	FetchErrors      atomic.Int64
	FetchTotalNanos  atomic.Int64
	DeleteCount      atomic.Int64
	DeleteErrors     atomic.Int64
	TransactionCount atomic.Int64
	TransactionFails atomic.Int64
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(count int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveRecords.Add(int64(count))
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordFetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFetch(semantic bool, results int, duration time.Duration, err error) {
	b.FetchCount.Add(1)
	b.FetchTotalNanos.Add(duration.Nanoseconds())
	if semantic {
		b.FetchSemantic.Add(1)
	}
	if err != nil {
		b.FetchErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(count int, duration time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordTransaction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransaction(duration time.Duration, err error) {
	b.TransactionCount.Add(1)
	if err != nil {
		b.TransactionFails.Add(1)
	}
}

// Stats is a snapshot of BasicMetricsCollector state.
type Stats struct {
	SaveCount        int64
	SaveRecords      int64
	SaveErrors       int64
	SaveAvgNanos     int64
	FetchCount       int64
	FetchSemantic    int64
	FetchErrors      int64
	FetchAvgNanos    int64
	DeleteCount      int64
	DeleteErrors     int64
	TransactionCount int64
	TransactionFails int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() Stats {
	s := Stats{
		SaveCount:        b.SaveCount.Load(),
		SaveRecords:      b.SaveRecords.Load(),
		SaveErrors:       b.SaveErrors.Load(),
		FetchCount:       b.FetchCount.Load(),
		FetchSemantic:    b.FetchSemantic.Load(),
		FetchErrors:      b.FetchErrors.Load(),
		DeleteCount:      b.DeleteCount.Load(),
		DeleteErrors:     b.DeleteErrors.Load(),
		TransactionCount: b.TransactionCount.Load(),
		TransactionFails: b.TransactionFails.Load(),
	}
	if s.SaveCount > 0 {
		s.SaveAvgNanos = b.SaveTotalNanos.Load() / s.SaveCount
	}
	if s.FetchCount > 0 {
		s.FetchAvgNanos = b.FetchTotalNanos.Load() / s.FetchCount
	}
	return s
}
