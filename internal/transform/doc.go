// Package transform turns raw usage-metrics records into
// analytics-compatible ones: keys are rewritten to satisfy BigQuery column
// naming, timestamps are rounded for partitioning, and whole files are
// re-serialized atomically in their input format (plain or gzip JSONL).
package transform
