// Package deepdist quantifies how different two Go values are.
//
// A Session compares two arbitrary, possibly nested and possibly
// self-referential values and reduces their difference to a score in
// [0, 1], where 0 means identical and 1 maximally different.
//
// # Quick Start
//
//	s, _ := deepdist.New(t1, t2)
//	d, _ := s.RoughDistance(ctx)
//
// Numbers, times, dates, durations and times of day are measured directly:
//
//	|a-b| / ((a+b)/cutoff), capped at cutoff
//
// Everything else is diffed structurally. The size of the diff report is
// divided by the rough lengths of both values, which are memoized in a
// cache.LengthCache keyed by content hash.
//
// # Pairwise Precomputation
//
// When matching the added and removed items of unordered collections, a
// Session can precompute a DistanceTable for every candidate pair, either
// through a Comparator with three verdicts (Close, NotClose, Declined) or
// in one batch for plain numbers:
//
//	t1, removed, _ := s.BuildHashTable(removedItems)
//	t2, added, _ := s.BuildHashTable(addedItems)
//	table := s.PrecalculateNumeric(ctx, added, removed, t1, t2, nil)
//
// # Collaborators
//
// The structural report comes from a Differ and rough lengths from a
// Hasher. The diff and deephash packages provide the defaults; both can be
// replaced with WithDiffer and WithHasher.
//
// # Observability
//
// Sessions log through a Logger (slog) and report to a MetricsCollector.
// See the prommetrics package for a Prometheus collector.
package deepdist
