package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/internal/config"
	"github.com/leapstack-labs/leapmeta/internal/demo"
	"github.com/leapstack-labs/leapmeta/internal/state"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/loader"
	"github.com/leapstack-labs/leapmeta/pkg/model"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext reads the config and logger stored by the root command.
// Commands run on their own fall back to defaults.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// WithFormat replaces the renderer when a per-command format flag is set.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) *CommandContext {
	if format != "" {
		c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	return c
}

// Model builds the programming model from the configuration.
func (c *CommandContext) Model() (*model.ProgrammingModel, error) {
	mc, err := c.Cfg.ProgrammingModel()
	if err != nil {
		return nil, err
	}
	return model.Default(mc), nil
}

// Build loads the demo domain, plus the legacy types when asked. In strict
// mode a non-empty report comes back with an error wrapping
// loader.ErrValidationFailed, and the loader is still usable.
func (c *CommandContext) Build(legacy bool) (*loader.Loader, *core.Report, error) {
	m, err := c.Model()
	if err != nil {
		return nil, nil, err
	}
	l := loader.New(m, demo.Provider(), loader.Options{Logger: c.Logger})
	types := demo.Types()
	if legacy {
		types = append(types, demo.LegacyTypes()...)
	}
	report, err := l.BuildUnit(types...)
	if report == nil {
		return nil, nil, err
	}
	return l, report, err
}

// OpenStore opens the snapshot store at the configured state path.
func (c *CommandContext) OpenStore() (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore()
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, fmt.Errorf("open state %s: %w", c.Cfg.StatePath, err)
	}
	return store, nil
}
