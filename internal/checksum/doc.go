// Package checksum computes SHA-256 checksums of transformed output files
// for the run manifest. Two digests are recorded per file: the raw bytes as
// written, and the decompressed content for gzip files so downstream
// verification is independent of compression settings.
package checksum
