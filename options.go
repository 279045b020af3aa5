package scopestack

import (
	"strings"

	"github.com/goliatone/go-scopestack/pkg/activity"
	"github.com/google/uuid"
)

// Option configures a store on construction.
type Option func(*config)

type config struct {
	id            string
	logger        FrameLogger
	activityHooks activity.Hooks
	channel       string
	actorID       string
	tenantID      string
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.id == "" && cfg.observed() {
		cfg.id = uuid.NewString()
	}
	return cfg
}

// observed reports whether anything outside the store will see its events.
func (cfg config) observed() bool {
	if len(cfg.activityHooks) > 0 {
		return true
	}
	if cfg.logger == nil {
		return false
	}
	_, noop := cfg.logger.(noopFrameLogger)
	return !noop
}

func (cfg config) frameLogger() FrameLogger {
	if cfg.logger != nil {
		return cfg.logger
	}
	return noopFrameLogger{}
}

// WithID names the store in log lines, activity events and OrderError values.
// Without it an observed store gets a random UUID.
func WithID(id string) Option {
	return func(cfg *config) {
		cfg.id = strings.TrimSpace(id)
	}
}
