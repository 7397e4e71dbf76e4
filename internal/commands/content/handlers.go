package contentcmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/restatolahdata/go-artikel/internal/commands"
	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/internal/redirects"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

const (
	validateOperation = "content.validate"
	refreshOperation  = "content.refresh"
)

// ErrContentInvalid is returned by strict validation when the report has findings.
var ErrContentInvalid = errors.New("content command: corpus has problems")

var (
	_ command.Commander[ValidateContentCommand] = (*ValidateContentHandler)(nil)
	_ command.Commander[RefreshContentCommand]  = (*RefreshContentHandler)(nil)
)

// RedirectValidator is the part of redirects.Resolver used by validation.
type RedirectValidator interface {
	Validate(ctx context.Context) ([]redirects.Problem, error)
}

// Report is the outcome of one validation run.
type Report struct {
	Content   content.ValidationReport `json:"content"`
	Redirects []redirects.Problem      `json:"redirects,omitempty"`
}

// OK reports whether neither the corpus nor the redirect table has findings.
func (r Report) OK() bool {
	return r.Content.OK() && len(r.Redirects) == 0
}

// ValidateContentHandler runs content.Service.Validate through the shared
// command handler.
type ValidateContentHandler struct {
	inner *commands.Handler[ValidateContentCommand]
}

// NewValidateContentHandler binds validation to service. redirects may be nil.
// sink, when set, receives every report before strict mode is evaluated.
func NewValidateContentHandler(service content.Service, validator RedirectValidator, logger interfaces.Logger, sink func(Report), opts ...commands.HandlerOption[ValidateContentCommand]) *ValidateContentHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateContentCommand) error {
		contentReport, err := service.Validate(ctx)
		if err != nil {
			return err
		}
		report := Report{Content: contentReport}
		if msg.Redirects && validator != nil {
			problems, err := validator.Validate(ctx)
			if err != nil {
				return err
			}
			report.Redirects = problems
		}

		logging.WithFields(logger, map[string]any{
			"posts":           report.Content.Posts,
			"issues":          len(report.Content.Issues),
			"slug_mismatches": len(report.Content.SlugMismatches),
			"duplicate_slugs": len(report.Content.DuplicateSlugs),
			"redirects":       len(report.Redirects),
		}).Info("content.command.validate.completed")

		if sink != nil {
			sink(report)
		}
		if msg.Strict && !report.OK() {
			return fmt.Errorf("%w: %d issues, %d slug mismatches, %d duplicate slugs, %d redirect problems",
				ErrContentInvalid,
				len(report.Content.Issues),
				len(report.Content.SlugMismatches),
				len(report.Content.DuplicateSlugs),
				len(report.Redirects))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateContentCommand]{
		commands.WithLogger[ValidateContentCommand](logger),
		commands.WithOperation[ValidateContentCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateContentCommand) map[string]any {
			return map[string]any{"strict": msg.Strict, "check_redirects": msg.Redirects}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateContentCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ValidateContentCommand].
func (h *ValidateContentHandler) Execute(ctx context.Context, msg ValidateContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RefreshContentHandler invalidates the cached corpus snapshot.
type RefreshContentHandler struct {
	inner *commands.Handler[RefreshContentCommand]
}

// NewRefreshContentHandler binds refreshes to service.
func NewRefreshContentHandler(service content.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshContentCommand]) *RefreshContentHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RefreshContentCommand) error {
		return service.Refresh(ctx)
	}

	handlerOpts := []commands.HandlerOption[RefreshContentCommand]{
		commands.WithLogger[RefreshContentCommand](logger),
		commands.WithOperation[RefreshContentCommand](refreshOperation),
		commands.WithMessageFields(func(msg RefreshContentCommand) map[string]any {
			return map[string]any{"reason": msg.Reason}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RefreshContentCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RefreshContentCommand].
func (h *RefreshContentHandler) Execute(ctx context.Context, msg RefreshContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
