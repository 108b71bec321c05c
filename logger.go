package asynclog

import (
	"sync"
	"sync/atomic"
)

// Options controls how a Logger snapshots, queues, and filters events.
type Options struct {
	// MaxLevel sets the initial severity filter. The zero value admits
	// everything; call SetMaxLevel(FilterOff) after construction to mute a
	// logger entirely.
	MaxLevel LevelFilter

	// QueueCapacity bounds the dispatch queue when positive. The default (0)
	// keeps the queue unbounded: no record is ever rejected, and memory grows
	// without limit if producers outrun the sink.
	QueueCapacity int

	// Overflow selects the full-queue behaviour when QueueCapacity is set.
	Overflow OverflowPolicy

	// Caller resolves the calling function's package, file, and line on every
	// convenience-method call (Trace through Error). Events passed to Log
	// directly are never annotated.
	Caller bool
}

// Stats captures cumulative dispatch counters for a Logger. Replayed trails
// Enqueued by however many records are still queued; Dropped counts records
// rejected by a bounded queue's overflow policy.
type Stats struct {
	Enqueued uint64
	Replayed uint64
	Dropped  uint64
}

// Logger is the facade producers log through. Log snapshots the event and
// hands it to a background drain goroutine; the caller never waits on the
// sink's formatting or I/O. Exactly one drain goroutine services the queue,
// replaying records into the sink strictly one at a time, so the sink
// observes each producer's records in that producer's call order.
type Logger struct {
	sink   Sink
	queue  *dispatchQueue
	filter atomic.Int32
	caller bool

	enqueued atomic.Uint64
	replayed atomic.Uint64
	dropped  atomic.Uint64

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New returns a Logger dispatching into sink and starts its drain consumer.
// A nil sink is replaced with NopSink.
func New(sink Sink, opts Options) *Logger {
	l := newLogger(sink, opts)
	l.start()
	return l
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{sink: NopSink{}}
}

func newLogger(sink Sink, opts Options) *Logger {
	if sink == nil {
		sink = NopSink{}
	}
	max := opts.MaxLevel
	if max == 0 {
		max = FilterTrace
	}
	l := &Logger{
		sink:   sink,
		queue:  newDispatchQueue(opts.QueueCapacity, opts.Overflow),
		caller: opts.Caller,
		done:   make(chan struct{}),
	}
	l.filter.Store(int32(max))
	return l
}

// start launches the drain consumer. Separate from construction so Install
// can arbitrate the process-wide slot before any goroutine exists.
func (l *Logger) start() {
	go l.drain()
}

// drain is the single sequential consumer: it pops queued items one at a
// time and replays each record into the sink to completion before taking the
// next. It exits when the queue is closed and fully drained.
func (l *Logger) drain() {
	defer close(l.done)
	for {
		it, ok := l.queue.pop()
		if !ok {
			return
		}
		if it.barrier != nil {
			close(it.barrier)
			continue
		}
		l.replayed.Add(1)
		l.sink.Log(&it.rec)
	}
}

// Enabled reports whether an event at level for target would be dispatched.
// It is synchronous and allocation-free: the severity filter is checked
// first, then the sink's own enablement. Callers use it to skip expensive
// argument construction.
func (l *Logger) Enabled(level Level, target string) bool {
	if l == nil || l.queue == nil {
		return false
	}
	if !LevelFilter(l.filter.Load()).Admits(level) {
		return false
	}
	return l.sink.Enabled(level, target)
}

// Log snapshots e and enqueues it for the drain consumer, then returns
// immediately. Template arguments are rendered here because they may alias
// caller-stack data that will not survive past this call. Log never blocks
// on the sink and never reports the replay's outcome.
func (l *Logger) Log(e Event) {
	if l == nil || l.queue == nil {
		return
	}
	if !l.Enabled(e.Level, e.Target) {
		return
	}
	l.enqueue(snapshot(e))
}

func (l *Logger) enqueue(rec Record) {
	if l.queue.push(item{rec: rec}) {
		l.enqueued.Add(1)
		return
	}
	l.dropped.Add(1)
}

// Flush waits for every record enqueued before the call to be replayed, then
// delegates to the sink's own Flush. The wait makes Flush a true barrier: a
// sink state observed after Flush returns reflects all prior Log calls on
// this Logger. On a closed Logger, Flush only delegates.
func (l *Logger) Flush() {
	if l == nil || l.queue == nil {
		return
	}
	barrier := make(chan struct{})
	if l.queue.push(item{barrier: barrier}) {
		<-barrier
	}
	l.sink.Flush()
}

// Close stops intake, drains the backlog, flushes the sink, and closes it
// when it implements io.Closer. Close is idempotent; Log calls after Close
// are silently discarded.
func (l *Logger) Close() error {
	if l == nil || l.queue == nil {
		return nil
	}
	l.closeOnce.Do(func() {
		l.queue.close()
		<-l.done
		l.sink.Flush()
		l.closeErr = closeSink(l.sink)
	})
	return l.closeErr
}

// SetMaxLevel replaces the severity filter. Safe to call at any time from
// any goroutine; records already queued are unaffected.
func (l *Logger) SetMaxLevel(filter LevelFilter) {
	if l == nil || l.queue == nil {
		return
	}
	l.filter.Store(int32(filter))
}

// MaxLevel returns the current severity filter.
func (l *Logger) MaxLevel() LevelFilter {
	if l == nil || l.queue == nil {
		return FilterOff
	}
	return LevelFilter(l.filter.Load())
}

// Stats returns cumulative dispatch counters.
func (l *Logger) Stats() Stats {
	if l == nil {
		return Stats{}
	}
	return Stats{
		Enqueued: l.enqueued.Load(),
		Replayed: l.replayed.Load(),
		Dropped:  l.dropped.Load(),
	}
}

// Trace logs msg at TraceLevel for target.
func (l *Logger) Trace(target, msg string, args ...any) {
	l.emit(TraceLevel, target, msg, args)
}

// Debug logs msg at DebugLevel for target.
func (l *Logger) Debug(target, msg string, args ...any) {
	l.emit(DebugLevel, target, msg, args)
}

// Info logs msg at InfoLevel for target.
func (l *Logger) Info(target, msg string, args ...any) {
	l.emit(InfoLevel, target, msg, args)
}

// Warn logs msg at WarnLevel for target.
func (l *Logger) Warn(target, msg string, args ...any) {
	l.emit(WarnLevel, target, msg, args)
}

// Error logs msg at ErrorLevel for target.
func (l *Logger) Error(target, msg string, args ...any) {
	l.emit(ErrorLevel, target, msg, args)
}

func (l *Logger) emit(level Level, target, msg string, args []any) {
	if !l.Enabled(level, target) {
		return
	}
	e := Event{Level: level, Target: target, Message: msg, Args: args}
	if l.caller {
		e.ModulePath, e.File, e.Line = callerOrigin(2)
	}
	l.enqueue(snapshot(e))
}

// Named returns a view of l with target bound to every entry.
func (l *Logger) Named(target string) Named {
	return Named{logger: l, target: target}
}

// Named is a target-bound view of a Logger. The zero value discards
// everything.
type Named struct {
	logger *Logger
	target string
}

// Trace logs msg at TraceLevel.
func (n Named) Trace(msg string, args ...any) { n.logger.emit(TraceLevel, n.target, msg, args) }

// Debug logs msg at DebugLevel.
func (n Named) Debug(msg string, args ...any) { n.logger.emit(DebugLevel, n.target, msg, args) }

// Info logs msg at InfoLevel.
func (n Named) Info(msg string, args ...any) { n.logger.emit(InfoLevel, n.target, msg, args) }

// Warn logs msg at WarnLevel.
func (n Named) Warn(msg string, args ...any) { n.logger.emit(WarnLevel, n.target, msg, args) }

// Error logs msg at ErrorLevel.
func (n Named) Error(msg string, args ...any) { n.logger.emit(ErrorLevel, n.target, msg, args) }

// Enabled reports whether level would be dispatched for the bound target.
func (n Named) Enabled(level Level) bool { return n.logger.Enabled(level, n.target) }
