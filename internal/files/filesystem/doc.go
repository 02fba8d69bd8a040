// Package filesystem provides filesystem abstraction interfaces and
// implementations.
//
// The pipeline reads data files from an input tree and publishes transformed
// files to an output tree; both sides go through the Provider interface so
// tests can run entire pipelines against an in-memory filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
