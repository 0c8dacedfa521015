// Package probe implements diagnostics that verify specific kernel file system
// call semantics: closing a descriptor twice, the interaction between
// append-mode writes and the file offset, and the raw behavior of rename(2).
// Each probe performs a fixed, linear sequence of system calls through package
// sysraw and reports the first deviation from the expected behavior as an
// *AssertionError. Probes never retry and never clean up after a failed
// assertion, since the state at the point of failure is itself diagnostic.
package probe
