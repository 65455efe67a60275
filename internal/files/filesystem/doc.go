// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// Dataset trees are walked, derivative files are streamed for hashing and
// annotation documents are read and written through FileSystemProvider, so
// every component above it can be tested against the in-memory implementation.
//
// Key interfaces:
//   - FileSystemProvider: Opens directories and reads, streams, writes and stats files
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual file discovered by a walk
//   - FileInfo: Alias of fs.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing; counts open
//     handles and can inject read failures
package filesystem
