// Package sysraw exposes the file system calls used by the probes as thin,
// unmediated passthroughs. Every call reports its outcome the way the kernel
// does: a raw return value, which is -1 on failure, and the errno left by the
// call. Nothing is retried (not even on EINTR), buffered, or translated into
// higher-level errors, since the probes exist to observe exactly what the
// kernel does.
package sysraw
