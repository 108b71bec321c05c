// Package asynclog decouples emitting a log line from rendering and writing
// it. Call sites go through a thin facade that snapshots the event and
// returns immediately; the expensive work (formatting, I/O, network) happens
// on a single background drain goroutine that replays records into a
// pluggable sink.
//
// # Design overview
//
//   - Snapshot at the boundary: template arguments may alias caller-stack
//     data, so the message is rendered eagerly on the caller's goroutine and
//     only owned Records ever cross into the background.
//   - One queue, one consumer: an ordered queue (unbounded by default) feeds
//     exactly one drain goroutine, which replays records strictly one at a
//     time. The sink therefore sees each producer's records in that
//     producer's call order, and some valid interleaving across producers.
//   - Set-once installation: Install claims a process-wide slot atomically;
//     racing installs yield exactly one winner and the losers get
//     ErrAlreadyInstalled with no side effects.
//   - Flush is a barrier: it waits for everything enqueued before the call to
//     be replayed, then flushes the sink, so a post-Flush sink state reflects
//     all prior Log calls.
//
// # Usage
//
//	func main() {
//		asynclog.MustInstall(console.New(os.Stderr, console.Options{}), asynclog.FilterDebug)
//		defer asynclog.Flush()
//
//		asynclog.Info("main", "listening on :%d", 8080)
//	}
//
// Standalone loggers work the same way without touching process state:
//
//	logger := asynclog.New(sink, asynclog.Options{MaxLevel: asynclog.FilterInfo})
//	defer logger.Close()
//	web := logger.Named("http")
//	web.Warn("upstream slow: %s", time.Since(start))
//
// # Backpressure
//
// The default queue never rejects a record; a producer that outruns the sink
// grows memory without bound. Hardened deployments can set
// Options.QueueCapacity together with an OverflowPolicy (block, drop-newest,
// drop-oldest); drops are counted in Logger.Stats rather than vanishing.
//
// Sink adapters live in the console, zapsink, and slogsink subpackages.
package asynclog
