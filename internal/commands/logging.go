package commands

import (
	"strings"

	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

const commandModuleRoot = "artikel.commands"

// CommandLogger returns a module-scoped logger for command handlers.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
