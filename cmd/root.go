package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signalnine/evalagg/internal/aggregate"
	"github.com/signalnine/evalagg/internal/config"
	"github.com/signalnine/evalagg/internal/inventory"
	"github.com/signalnine/evalagg/internal/logger"
)

const envPrefix = "EVALAGG"

var (
	cfgFile  string
	settings *viper.Viper

	headline = color.New(color.FgCyan, color.Bold).SprintFunc()
	warning  = color.New(color.FgYellow).SprintFunc()
)

// Flags that override config file values; the viper key matches the flag name.
var overrideFlags = []struct {
	name  string
	usage string
}{
	{"eval-root", "evaluation root directory (overrides paths.evaluations)"},
	{"results-root", "results root directory (overrides paths.results)"},
	{"inventory", "inventory file (overrides paths.inventory)"},
	{"log-level", "log level: debug, info, warn, error"},
	{"log-format", "log format: text, json"},
}

// newSettings resolves overrides from bound flags first, then EVALAGG_*
// environment variables.
func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func NewRootCmd() *cobra.Command {
	settings = newSettings()

	root := &cobra.Command{
		Use:          "evalagg",
		Short:        "Aggregate evaluation reports into comparison charts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "evalagg.yaml", "config file path (.yaml or .toml)")
	for _, f := range overrideFlags {
		root.PersistentFlags().String(f.name, "", f.usage)
		_ = settings.BindPFlag(f.name, root.PersistentFlags().Lookup(f.name))
	}

	root.AddCommand(newTemplatesCmd())
	root.AddCommand(newJobCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newValidateCmd())
	return root
}

// loadConfig reads the config file and applies flag and environment
// overrides on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, settings)
	return cfg, nil
}

func applyOverrides(cfg *config.Config, v *viper.Viper) {
	set := func(dst *string, key string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	set(&cfg.Paths.Evaluations, "eval-root")
	set(&cfg.Paths.Results, "results-root")
	set(&cfg.Paths.Inventory, "inventory")
	set(&cfg.Logging.Level, "log-level")
	set(&cfg.Logging.Format, "log-format")
}

// session is everything a command needs to run aggregation jobs.
type session struct {
	cfg *config.Config
	inv *inventory.Inventory
	gen *aggregate.Generator
	log *slog.Logger
}

func newSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	inv, err := inventory.Load(cfg.Paths.Inventory)
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded", "config", cfgFile, "evaluations", cfg.Paths.Evaluations, "results", cfg.Paths.Results, "jobs", len(cfg.Jobs))
	return &session{
		cfg: cfg,
		inv: inv,
		gen: aggregate.New(cfg.Paths.Evaluations, cfg.Paths.Results, inv, log),
		log: log,
	}, nil
}

// selectJobs returns the named job, or every job when args is empty.
func selectJobs(cfg *config.Config, args []string) ([]config.Job, error) {
	if len(args) == 0 {
		return cfg.Jobs, nil
	}
	job, err := cfg.Job(args[0])
	if err != nil {
		return nil, err
	}
	return []config.Job{*job}, nil
}

// resolveTemplates returns the job's explicit template references, or the
// inventory templates of its trays when none are listed.
func resolveTemplates(inv *inventory.Inventory, job config.Job) ([]inventory.Template, error) {
	if len(job.Templates) == 0 {
		return inv.Templates(job.Trays()), nil
	}
	templates := make([]inventory.Template, 0, len(job.Templates))
	for _, ref := range job.Templates {
		t, err := inv.Lookup(ref)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", job.Name, err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}
