package contentcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	validateMessageType = "artikel.content.validate"
	refreshMessageType  = "artikel.content.refresh"
)

// Refresh reasons accepted by RefreshContentCommand.
const (
	ReasonStartup = "startup"
	ReasonWatcher = "watcher"
	ReasonManual  = "manual"
)

// ValidateContentCommand audits the article corpus. With Strict set the
// handler fails when the report is not clean.
type ValidateContentCommand struct {
	Strict bool `json:"strict,omitempty"`
	// Redirects also checks the legacy redirect table.
	Redirects bool `json:"redirects,omitempty"`
}

// Type implements command.Message.
func (ValidateContentCommand) Type() string { return validateMessageType }

// Validate implements command.Message. Every combination of flags is valid.
func (ValidateContentCommand) Validate() error { return nil }

// RefreshContentCommand drops the cached corpus snapshot.
type RefreshContentCommand struct {
	Reason string `json:"reason"`
}

// Type implements command.Message.
func (RefreshContentCommand) Type() string { return refreshMessageType }

// Validate requires one of the known reasons.
func (cmd RefreshContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reason, validation.Required, validation.By(func(value any) error {
			switch value.(string) {
			case ReasonStartup, ReasonWatcher, ReasonManual:
				return nil
			}
			return validation.NewError("artikel.content.refresh.reason_invalid", "reason must be startup, watcher or manual")
		})),
	)
}
