// SPDX-License-Identifier: GPL-3.0-or-later

// Package mongoconn implements the connection-manager core of a document-
// database client driver: a pool of live server connections keyed by a
// stable identity, replica-set topology discovery from a seed list,
// read-preference candidate selection, and connection authentication and
// liveness probing.
//
// # Core Abstraction
//
// A [*Manager] owns a [*Registry] of [*Connection] values keyed by [Hash].
// [*Manager.GetReadWriteConnection] is the single entry point: given a
// [*ServerList] and [Flags], it dispatches on [ServerList.Type] to acquire
// one connection per seed, optionally discover the rest of a replica set's
// topology, and finally run candidate selection (filter, sort, truncate,
// pick) to return one connection honoring the caller's [ReadPreference].
//
// # Lifecycle
//
// [NewManager] creates a manager; many acquisitions follow via
// [*Manager.GetReadWriteConnection]; [*Manager.Deinit] destroys every
// registered connection and must be called exactly once, last.
//
// # Scheduling model
//
// Every operation on a [*Manager] or [*Connection] is synchronous and
// blocking: network I/O blocks the calling goroutine, there is no internal
// worker pool, and a [*Manager] is not safe for concurrent use — callers
// that need concurrency own one [*Manager] per goroutine, or supply their
// own mutual exclusion.
//
// # Observability
//
// All operations support structured logging via [LogFunc] (compatible with
// [log/slog] through [NewPrintfLogFunc] and [SLogger]). By default, logging
// is disabled ([DefaultLogFunc]). Error classification is configurable via
// [ErrClassifier]; by default, OS syscall errnos are classified by the
// errclass sub-package. Use [NewSpanID] to correlate every log line emitted
// by one acquisition or discovery run.
//
// # Design Boundaries
//
// This package does not implement the wire-protocol framer that issues
// ismaster/getnonce/authenticate/ping, the BSON codec behind it, URI or
// options parsing, or any cursor/query API — these are consumed through the
// narrow [Wire] interface and the [ServerDef] type (production callers
// supply a real [Wire] via [WithWire]; the default, [NoWire], fails every
// call). This package also does not implement write-concern
// acknowledgment, server-side cursor state, transactions, TLS
// configuration, DNS SRV polling, or asynchronous I/O.
package mongoconn
