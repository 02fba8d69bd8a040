// Package scanner discovers data files below an input directory.
//
// Discovery is recursive and supports the --path-contains filter used to
// restrict a run to particular partition directories. Results are returned
// in walk order (sorted by path), so task lists are deterministic.
package scanner
