package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"larder/internal/catalog"
	"larder/internal/config"
	"larder/internal/logging"
	"larder/internal/store"
)

type commandContext struct {
	configFlag *string
	dbFlag     *string
	formatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	closeLog   func() error
	sessionID  string
}

func newCommandContext(configFlag, dbFlag, formatFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		dbFlag:     dbFlag,
		formatFlag: formatFlag,
		sessionID:  uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.dbFlag != nil && strings.TrimSpace(*c.dbFlag) != "" {
			db, err := config.ExpandPath(strings.TrimSpace(*c.dbFlag))
			if err != nil {
				c.configErr = fmt.Errorf("resolve --db: %w", err)
				return
			}
			cfg.Paths.Database = db
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerValue builds the invocation logger once. A logger that cannot be
// built (for example an unwritable log file) degrades to stderr defaults.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, closeLog, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger, closeLog, _ = logging.New(logging.Options{Level: "warn"})
			logger.Warn("logging config rejected; using defaults", logging.Error(err))
		}
		c.logger = logger.With(logging.String(logging.FieldSessionID, c.sessionID))
		c.closeLog = closeLog
	})
	return c.logger
}

// close releases the log file opened for this invocation, if any.
func (c *commandContext) close() error {
	if c.closeLog == nil {
		return nil
	}
	err := c.closeLog()
	c.closeLog = nil
	return err
}

func (c *commandContext) annotate(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithSession(ctx, c.sessionID)
}

// withStore opens the catalog for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg, c.loggerValue())
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// outputFormat resolves the --format flag against the configured default.
func (c *commandContext) outputFormat() (string, error) {
	format := ""
	if c.formatFlag != nil {
		format = strings.ToLower(strings.TrimSpace(*c.formatFlag))
	}
	if format == "" {
		if cfg := c.configValue(); cfg != nil {
			format = cfg.Output.Format
		}
	}
	if format == "" {
		format = formatPlain
	}
	if !slices.Contains(config.OutputFormats(), format) {
		return "", catalog.Invalid("format", "unsupported value %q (use %s)", format, strings.Join(config.OutputFormats(), ", "))
	}
	return format, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, catalog.Invalid("id", "%q is not a valid id", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveRecipe accepts a numeric id or a recipe name.
func resolveRecipe(ctx context.Context, st *store.Store, arg string) (catalog.Recipe, error) {
	if id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64); err == nil {
		return st.GetRecipe(ctx, id)
	}
	return st.FindRecipeByName(ctx, arg)
}
