// Package record implements an order-preserving JSON object codec.
//
// Data files are JSON Lines; each line is one record. The standard library
// map decoding would reorder keys, so this package keeps the field order of
// the input so transformed files stay line-for-line comparable with their
// sources.
package record
