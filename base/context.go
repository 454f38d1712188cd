package base

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Context keeps the runtime data of a single frame run
type Context struct {
	UUID      uuid.UUID
	Trigger   string
	GoContext context.Context
	logger    log.FieldLogger
}

// NewContext creates a Context with a given logger, Trigger describes what started the run
func NewContext(logger log.FieldLogger, trigger string) *Context {
	u := uuid.New()
	return &Context{UUID: u, logger: logger.WithField("run", u.String()), Trigger: trigger, GoContext: context.TODO()}
}

// NewBaseContext creates a cancellable Context, used by the daemon and in tests
func NewBaseContext(logger log.FieldLogger) (*Context, context.CancelFunc) {
	u := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	return &Context{UUID: u, logger: logger, Trigger: "base", GoContext: ctx}, cancel
}

// WithTimeout derives a Context whose GoContext is cancelled after timeout, used around provider calls
func WithTimeout(parentContext *Context, timeout time.Duration) (*Context, context.CancelFunc) {
	goCtx, cancel := context.WithTimeout(parentContext.GoContext, timeout)
	ctx := &Context{UUID: parentContext.UUID, logger: parentContext.logger, Trigger: parentContext.Trigger, GoContext: goCtx}
	return ctx, cancel
}

// WithTrigger derives a Context for a new run that inherits the parent's
// cancellation
func WithTrigger(parentContext *Context, trigger string) *Context {
	u := uuid.New()
	return &Context{UUID: u, logger: parentContext.logger.WithField("run", u.String()), Trigger: trigger, GoContext: parentContext.GoContext}
}

// GetID returns the string representation of the ID for this run
func (c *Context) GetID() string {
	return c.UUID.String()
}

// GetTrigger returns what started this run
func (c *Context) GetTrigger() string {
	return c.Trigger
}

// GetLogger returns a Logger with the proper fields added to identify the run
func (c *Context) GetLogger() log.FieldLogger {
	return c.logger
}

func (c *Context) Done() <-chan struct{} {
	return c.GoContext.Done()
}
