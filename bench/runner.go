package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kocubinski/minirel-bench/bench/metrics"
)

// RunConfig holds the resolved command line of a generation run.
type RunConfig struct {
	Profile     string
	ParamsFile  string
	Out         string
	Seed        uint64
	SeedSet     bool
	WriteInfo   bool
	Table       bool
	MetricsFile string
	DumpParams  bool
	LogFormat   string
	LogLevel    string
}

// GenerateCommand returns the cobra command that writes a query file.
func GenerateCommand() *cobra.Command {
	var cfg RunConfig
	cmd := &cobra.Command{
		Use:   "gen-queryfile",
		Short: "Generate a deterministic insert/delete workload script for the record engine",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&cfg.Profile, "profile", ProfileSmall, fmt.Sprintf("parameter profile to use %v", ProfileNames()))
	cmd.Flags().StringVar(&cfg.ParamsFile, "params", "", "YAML parameter file; overrides --profile")
	cmd.Flags().StringVar(&cfg.Out, "out", "", "output script path; defaults to the profile's file name")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 0, "override the profile's random seed")
	cmd.Flags().BoolVar(&cfg.WriteInfo, "info", false, "write a JSON run summary next to the script")
	cmd.Flags().BoolVar(&cfg.Table, "summary", false, "print a per-entity summary table to stdout")
	cmd.Flags().StringVar(&cfg.MetricsFile, "metrics-file", "", "write run counters to this file in Prometheus text format")
	cmd.Flags().BoolVar(&cfg.DumpParams, "dump-params", false, "print the effective parameters as YAML and exit")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", "console", "log format (console|json)")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", "info", "log level")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg.SeedSet = cmd.Flags().Changed("seed")
		log, err := NewLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return err
		}
		return Run(cfg, cmd.OutOrStdout(), log)
	}
	return cmd
}

// ResolveParams picks the parameter set for cfg: a params file if given,
// otherwise the named profile, then applies the seed and output overrides.
func ResolveParams(cfg RunConfig) (ScriptParams, error) {
	var (
		p   ScriptParams
		err error
	)
	if cfg.ParamsFile != "" {
		p, err = LoadParams(cfg.ParamsFile)
	} else {
		p, err = Profile(cfg.Profile)
	}
	if err != nil {
		return ScriptParams{}, err
	}
	if cfg.SeedSet {
		p.Seed = cfg.Seed
	}
	if cfg.Out != "" {
		p.OutFile = cfg.Out
	}
	if p.OutFile == "" {
		return ScriptParams{}, fmt.Errorf("no output file: set out_file in the params or pass --out")
	}
	return p, nil
}

// Run generates the script described by cfg. stdout only receives the
// parameter dump and the summary table.
func Run(cfg RunConfig, stdout io.Writer, log zerolog.Logger) error {
	p, err := ResolveParams(cfg)
	if err != nil {
		return err
	}
	if cfg.DumpParams {
		bz, err := MarshalParams(p)
		if err != nil {
			return err
		}
		_, err = stdout.Write(bz)
		return err
	}

	script, err := p.Compile(DefaultSchema())
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	var m *metrics.Script
	if cfg.MetricsFile != "" {
		m = metrics.NewScript()
	}
	log = log.With().Str("profile", p.Profile).Uint64("seed", p.Seed).Logger()
	log.Info().Str("file", p.OutFile).Msg("writing script")

	sum, err := GenerateFile(script, p.OutFile, WriteOptions{Log: log, Metrics: m})
	if err != nil {
		return err
	}
	for _, e := range sum.Entities {
		log.Info().
			Str("entity", e.Entity).
			Str("inserts", humanize.Comma(int64(e.Inserts))).
			Str("deletes", humanize.Comma(int64(e.Deletes))).
			Int("bursts", e.Bursts).
			Str("est_pages", humanize.Comma(int64(e.EstimatedPages))).
			Msg("entity summary")
	}

	if cfg.Table {
		sum.RenderTable(stdout)
	}
	if cfg.WriteInfo {
		if err := WriteInfo(p.OutFile, sum); err != nil {
			return err
		}
		log.Info().Str("file", infoFilename(p.OutFile)).Msg("wrote run summary")
	}
	if m != nil {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Info().Str("file", cfg.MetricsFile).Msg("wrote metrics")
	}
	return nil
}

// NewLogger builds the run logger. Console output is meant for terminals,
// json for collection.
func NewLogger(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	switch format {
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Logger{}, fmt.Errorf("unknown log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
