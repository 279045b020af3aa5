package scopestack

// Op names the store operation a FrameEvent describes.
type Op string

const (
	OpPush    Op = "push"
	OpTake    Op = "take"
	OpRelease Op = "release"
	OpUnwind  Op = "unwind"
	// OpRead tags OrderError values raised by top or view access.
	OpRead Op = "read"
	// OpNotify reports an activity hook failure; the stack itself is unaffected.
	OpNotify Op = "notify"
)

// FrameEvent describes a single transition on a store for logging.
type FrameEvent struct {
	Stack string
	Op    Op
	Depth int
	// Len is the store length after the operation completed.
	Len   int
	State State
	Err   error
}

// FrameLogger records frame events.
type FrameLogger interface {
	LogFrame(FrameEvent)
}

// FrameLoggerFunc adapts a function to FrameLogger.
type FrameLoggerFunc func(FrameEvent)

// LogFrame implements FrameLogger.
func (f FrameLoggerFunc) LogFrame(event FrameEvent) {
	if f != nil {
		f(event)
	}
}

type noopFrameLogger struct{}

func (noopFrameLogger) LogFrame(FrameEvent) {}

// WithLogger attaches a frame logger to the store.
func WithLogger(logger FrameLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopFrameLogger{}
			return
		}
		cfg.logger = logger
	}
}
