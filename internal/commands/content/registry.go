package contentcmd

import (
	"errors"

	"github.com/restatolahdata/go-artikel/internal/commands"
	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the content command handlers.
type HandlerSet struct {
	Validate *ValidateContentHandler
	Refresh  *RefreshContentHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	redirects RedirectValidator
	sink      func(Report)
}

// WithRedirectValidator lets validation also audit the redirect table.
func WithRedirectValidator(validator RedirectValidator) Option {
	return func(cfg *options) {
		cfg.redirects = validator
	}
}

// WithReportSink receives every validation report.
func WithReportSink(sink func(Report)) Option {
	return func(cfg *options) {
		cfg.sink = sink
	}
}

// RegisterContentCommands builds the content handlers and registers them
// with reg when it is non-nil.
func RegisterContentCommands(reg CommandRegistry, service content.Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("content command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "content")
	set := &HandlerSet{
		Validate: NewValidateContentHandler(service, cfg.redirects, logger, cfg.sink),
		Refresh:  NewRefreshContentHandler(service, logger),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Validate); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Refresh); err != nil {
			return nil, err
		}
	}
	return set, nil
}
