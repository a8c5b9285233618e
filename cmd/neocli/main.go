// cmd/neocli/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yackko/neo-analyzer/internal/catalog"
	"github.com/yackko/neo-analyzer/internal/config"
	"github.com/yackko/neo-analyzer/internal/datastore"
	"github.com/yackko/neo-analyzer/internal/feed"
	"github.com/yackko/neo-analyzer/tui"
	"github.com/yackko/neo-analyzer/types"
)

// glossary backs the explain command.
var glossary = map[string]string{
	"NEO":                "Near-Earth Object (NEO):\n  An asteroid or comet whose orbit brings it within 1.3 AU of the Sun, and so close to Earth's orbit.\n  The NeoWs feed lists every NEO with a recorded close approach on a given date.",
	"ABSOLUTE-MAGNITUDE": "Absolute Magnitude (H):\n  The brightness an object would have at 1 AU from both the Sun and the observer.\n  It is a proxy for size independent of distance: a lower H means a larger object.\n  The feed derives its estimated diameter range from H and an assumed albedo.",
	"HAZARDOUS":          "Potentially Hazardous:\n  The upstream flag marks objects whose orbits come close enough to Earth, and which are large enough, to warrant monitoring.\n  When two asteroids are combined, neocli recomputes the flag: hazardous if the combined minimum diameter exceeds 280 km or the combined relative velocity exceeds 5 km/s.",
	"CLOSE-APPROACH":     "Close Approach:\n  A recorded pass of the object near Earth, with its date, relative velocity and miss distance.\n  Only the first recorded close approach of each object is used.",
	"MISS-DISTANCE":      "Miss Distance:\n  The closest distance between the object and Earth during a close approach, in kilometers.",
	"SURFACE-GRAVITY":    "Surface Gravity:\n  g = G * M / r^2, with r the radius in meters and G = 6.67430e-11 m^3 kg^-1 s^-2.\n  For asteroids the minimum estimated diameter is used. Bodies without a positive diameter have no defined value.",
	"ESCAPE-VELOCITY":    "Escape Velocity:\n  v = sqrt(2 * G * M / r), reported in km/s. Computed for planets.",
	"IMPACT-ENERGY":      "Impact Energy:\n  E = 0.5 * m * v^2 with v the relative velocity in m/s, converted to megatons of TNT (1 Mt = 4.184e15 J).\n  Asteroid mass is estimated by averaging the volumes of spheres at the minimum and maximum diameter, at 3000 kg/m^3.",
	"COMBINATION":        "Combination:\n  Two asteroids combine into a new one: name \"A & B\"; diameters, mass, velocity and miss distance summed;\n  ID, URL, absolute magnitude and close approach date taken from the first asteroid; hazard flag recomputed.",
}

var (
	cfg    config.Config
	logger log.Logger = log.NewNopLogger()
)

var rootCmd = &cobra.Command{
	Use:   "neocli",
	Short: "Neocli analyzes near-Earth objects and solar-system planets.",
	Long: `Neocli retrieves near-Earth object data from NASA's NeoWs feed and derives physical properties:
surface gravity, escape velocity, impact energy and estimated mass. Two asteroids can be combined
into a synthetic composite body.
The API key is read from ` + config.APIKeyEnvVar + `, ` + config.LegacyAPIKeyEnvVar + ` or a .env file; otherwise you will be prompted.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		logger = newLogger(cfg.Verbose)
		level.Debug(logger).Log("msg", "configuration loaded", "config_file", viper.ConfigFileUsed(), "cache", cfg.CachePath)
		return nil
	},
}

func initConfig(cmd *cobra.Command) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".neocli")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	for _, name := range []string{"verbose", "feed-url", "cache-path", "fallback-file"} {
		if err := viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := config.MergeDotEnv(config.DotEnvFileName); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load()
	return err
}

func newLogger(verbose bool) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	allow := level.AllowInfo()
	if verbose {
		allow = level.AllowDebug()
	}
	l = level.NewFilter(l, allow)
	return log.With(l, "ts", log.DefaultTimestamp, "caller", log.DefaultCaller)
}

// session holds the feed loader and the cache it may own.
type session struct {
	loader *feed.Loader
	store  *datastore.Store
	apiKey string
}

func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			level.Warn(logger).Log("msg", "failed to close cache", "err", err)
		}
	}
}

func openSession(cmd *cobra.Command) (*session, error) {
	offline, _ := cmd.Flags().GetBool("offline")
	refresh, _ := cmd.Flags().GetBool("refresh")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	s := &session{}
	if !offline {
		key, err := resolveAPIKey(cfg.APIKey)
		if err != nil {
			cmd.SilenceUsage = true
			return nil, err
		}
		s.apiKey = key
	}

	var cache feed.Cache
	if !noCache {
		store, err := datastore.Open(logger, cfg.CachePath)
		if err != nil {
			level.Warn(logger).Log("msg", "continuing without cache", "err", err)
		} else {
			s.store = store
			cache = store
		}
	}

	client := feed.NewClient(logger, cfg.FeedURL, cfg.Timeout)
	s.loader = feed.NewLoader(logger, client, cache, cfg.FallbackFile, datastore.LoadFallback)
	s.loader.Refresh = refresh
	s.loader.Offline = offline
	return s, nil
}

// loadAsteroid retrieves the feed for date and parses the record at index.
func (s *session) loadAsteroid(ctx context.Context, date string, index int) (types.Asteroid, error) {
	f, src, err := s.loader.Load(ctx, date, s.apiKey)
	if err != nil {
		return types.Asteroid{}, err
	}
	level.Info(logger).Log("msg", "feed loaded", "date", date, "source", src, "records", f.Count(date))
	a, err := f.Asteroid(date, index)
	if err != nil {
		return types.Asteroid{}, fmt.Errorf("error creating asteroid for %s: %w", date, err)
	}
	return a, nil
}

// asteroidReport adds the derived values to an asteroid's JSON form.
type asteroidReport struct {
	types.Asteroid
	SurfaceGravity *float64 `json:"surfaceGravity,omitempty"`
	ImpactEnergyMt float64  `json:"impactEnergyMt"`
}

func newAsteroidReport(a types.Asteroid) asteroidReport {
	r := asteroidReport{Asteroid: a, ImpactEnergyMt: a.ImpactEnergy()}
	if g, err := a.SurfaceGravity(); err == nil {
		r.SurfaceGravity = &g
	}
	return r
}

type planetReport struct {
	types.Planet
	SurfaceGravity *float64 `json:"surfaceGravity,omitempty"`
	EscapeVelocity *float64 `json:"escapeVelocity,omitempty"`
}

func newPlanetReport(p types.Planet) planetReport {
	r := planetReport{Planet: p}
	if g, err := p.SurfaceGravity(); err == nil {
		r.SurfaceGravity = &g
	}
	if v, err := p.EscapeVelocity(); err == nil {
		r.EscapeVelocity = &v
	}
	return r
}

func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func runTUI(title string, bodies []types.Body) error {
	p := tea.NewProgram(tui.NewListModel(title, bodies), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// renderAsteroids writes asteroids in the requested format.
func renderAsteroids(out io.Writer, format, title string, asteroids []types.Asteroid) error {
	switch strings.ToLower(format) {
	case "tui":
		bodies := make([]types.Body, 0, len(asteroids))
		for _, a := range asteroids {
			bodies = append(bodies, a)
		}
		return runTUI(title, bodies)
	case "table":
		for i, a := range asteroids {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "--- %s ---\n", title)
			printInfo(out, a)
		}
		return nil
	case "json":
		reports := make([]asteroidReport, 0, len(asteroids))
		for _, a := range asteroids {
			reports = append(reports, newAsteroidReport(a))
		}
		if len(reports) == 1 {
			return writeJSON(out, reports[0])
		}
		return writeJSON(out, reports)
	default:
		return fmt.Errorf("unknown output format '%s'. Use json, table or tui", format)
	}
}

var asteroidCmd = &cobra.Command{
	Use:   "asteroid [date]",
	Short: "Show an asteroid with a close approach on the given date",
	Long: `Retrieves the NEO feed for a date (YYYY-MM-DD) and shows the selected asteroid with its derived values.
The feed is served from the local cache when possible, then the NASA API, then the fallback file.

Examples:
  neocli asteroid 2024-03-15
  neocli asteroid 2024-03-15 --index 2 --output table
  neocli asteroid 2024-03-15 --metric impact
  neocli asteroid 2024-03-15 --all --output tui`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := args[0]
		index, _ := cmd.Flags().GetInt("index")
		metric, _ := cmd.Flags().GetString("metric")
		all, _ := cmd.Flags().GetBool("all")
		outputFormat, _ := cmd.Flags().GetString("output")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		if all {
			f, src, err := s.loader.Load(cmd.Context(), date, s.apiKey)
			if err != nil {
				return err
			}
			level.Info(logger).Log("msg", "feed loaded", "date", date, "source", src, "records", f.Count(date))
			asteroids, skipped := f.Asteroids(date)
			for _, err := range skipped {
				level.Warn(logger).Log("msg", "skipping malformed record", "date", date, "err", err)
			}
			if len(asteroids) == 0 && len(skipped) > 0 {
				cmd.SilenceUsage = true
				return fmt.Errorf("no well-formed record for %s: %w", date, errors.Join(skipped...))
			}
			if len(asteroids) == 0 {
				fmt.Fprintln(out, "No asteroid selected.")
				return nil
			}
			sort.Slice(asteroids, func(i, j int) bool { return asteroids[i].Name < asteroids[j].Name })
			if strings.EqualFold(outputFormat, "table") {
				printAsteroidsTable(out, asteroids)
				return nil
			}
			return renderAsteroids(out, outputFormat, "NEOs on "+date, asteroids)
		}

		a, err := s.loadAsteroid(cmd.Context(), date, index)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}

		return printAsteroidMetric(cmd, a, metric, outputFormat)
	},
}

// printAsteroidMetric writes one derived value of a, or the full report when
// metric is all.
func printAsteroidMetric(cmd *cobra.Command, a types.Asteroid, metric, outputFormat string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(metric) {
	case "gravity":
		g, err := a.SurfaceGravity()
		if err != nil {
			cmd.SilenceUsage = true
			return fmt.Errorf("surface gravity of %s: %w", a.Name, err)
		}
		fmt.Fprintf(out, "Surface Gravity: %g m/s^2\n", g)
		return nil
	case "impact":
		fmt.Fprintf(out, "Impact Energy: %g megatons of TNT\n", a.ImpactEnergy())
		return nil
	case "", "all":
		return renderAsteroids(out, outputFormat, "Asteroid Information", []types.Asteroid{a})
	default:
		cmd.SilenceUsage = true
		return fmt.Errorf("unknown metric '%s'. Use all, gravity or impact", metric)
	}
}

var combineCmd = &cobra.Command{
	Use:   "combine [date1] [date2]",
	Short: "Combine the asteroids of two dates into one composite asteroid",
	Long: `Loads one asteroid for each date and combines them. Sizes, mass, velocity and miss distance are summed;
identity fields come from the first asteroid; the hazard flag is recomputed.

Examples:
  neocli combine 2024-03-15 2024-04-02
  neocli combine 2024-03-15 2024-03-15 --index1 0 --index2 1 --output table`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index1, _ := cmd.Flags().GetInt("index1")
		index2, _ := cmd.Flags().GetInt("index2")
		outputFormat, _ := cmd.Flags().GetString("output")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		first, err := s.loadAsteroid(cmd.Context(), args[0], index1)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}
		second, err := s.loadAsteroid(cmd.Context(), args[1], index2)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}
		combined := types.CombineAsteroids(first, second)
		level.Debug(logger).Log("msg", "asteroids combined", "first", first.ID, "second", second.ID, "hazardous", combined.IsHazardous)

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "table":
			fmt.Fprintln(out, "--- Asteroid Information ---")
			printInfo(out, first)
			fmt.Fprintln(out, "\n--- Second Asteroid Information ---")
			printInfo(out, second)
			fmt.Fprintln(out, "\n--- Combined Asteroid Information ---")
			printInfo(out, combined)
			return nil
		case "tui":
			return runTUI("Combined asteroid", []types.Body{first, second, combined})
		case "json":
			return writeJSON(out, struct {
				First    asteroidReport `json:"first"`
				Second   asteroidReport `json:"second"`
				Combined asteroidReport `json:"combined"`
			}{newAsteroidReport(first), newAsteroidReport(second), newAsteroidReport(combined)})
		default:
			cmd.SilenceUsage = true
			return fmt.Errorf("unknown output format '%s'. Use json, table or tui", outputFormat)
		}
	},
}

var planetsCmd = &cobra.Command{
	Use:   "planets",
	Short: "List solar-system planets with surface gravity and escape velocity",
	Long: `Lists the predefined planets, or the planets of a catalog file (.csv with name,diameter_km,mass_kg
columns, or .toml with [[planet]] tables) given with --catalog or planets_file in the config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")
		path := cfg.PlanetsFile
		if p, _ := cmd.Flags().GetString("catalog"); p != "" {
			path = p
		}

		planets, err := catalog.Load(path)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}
		level.Debug(logger).Log("msg", "planet catalog loaded", "planets", len(planets), "file", path)

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "tui":
			bodies := make([]types.Body, 0, len(planets))
			for _, p := range planets {
				bodies = append(bodies, p)
			}
			return runTUI("Predefined Planets", bodies)
		case "table":
			printPlanetsTable(out, planets)
			return nil
		case "info":
			fmt.Fprintln(out, "--- Predefined Planets Information ---")
			for _, p := range planets {
				printInfo(out, p)
				fmt.Fprintln(out, "------------------------------")
			}
			return nil
		case "json":
			reports := make([]planetReport, 0, len(planets))
			for _, p := range planets {
				reports = append(reports, newPlanetReport(p))
			}
			return writeJSON(out, reports)
		default:
			cmd.SilenceUsage = true
			return fmt.Errorf("unknown output format '%s'. Use json, table, info or tui", outputFormat)
		}
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain [term]",
	Short: "Explain a term used by neocli.",
	Long: `Provides a definition or explanation for NEO terms and the derived values.
Examples:
  neocli explain neo
  neocli explain impact-energy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(args[0]), " ", "-"))
		if explanation, found := glossary[term]; found {
			fmt.Fprintln(cmd.OutOrStdout(), explanation)
			return nil
		}
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Error: Unknown term: %s\n", args[0])
		fmt.Fprintln(errOut, "Supported terms are:")
		var supported []string
		for k := range glossary {
			supported = append(supported, strings.ToLower(k))
		}
		sort.Strings(supported)
		for _, t := range supported {
			fmt.Fprintf(errOut, "  - %s\n", t)
		}
		cmd.SilenceUsage = true
		return fmt.Errorf("explanation not found for term '%s'", args[0])
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or manage the local feed cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the dates with a cached feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := datastore.Open(logger, cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		dates, err := store.Dates()
		if err != nil {
			return fmt.Errorf("failed to list cache: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(dates) == 0 {
			fmt.Fprintf(out, "Cache %s is empty.\n", store.Path())
			return nil
		}
		fmt.Fprintf(out, "Cached dates: %d.\n", len(dates))
		for _, d := range dates {
			fmt.Fprintln(out, d)
		}
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove every cached feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := datastore.Open(logger, cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Purge()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached feed(s).\n", n)
		return nil
	},
}

var cacheExportCmd = &cobra.Command{
	Use:   "export [date] [file]",
	Short: "Write a cached feed to a file usable as the offline fallback",
	Long: `Writes the cached feed for a date to a file. Without a file argument the configured fallback file is used,
so later runs can fall back to it when the NASA API is unreachable.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.FallbackFile
		if len(args) == 2 {
			path = args[1]
		}
		store, err := datastore.Open(logger, cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()

		raw, err := store.Get(args[0])
		if errors.Is(err, datastore.ErrNotCached) {
			cmd.SilenceUsage = true
			return fmt.Errorf("no cached feed for %s; run 'neocli asteroid %s' first", args[0], args[0])
		}
		if err != nil {
			return err
		}
		if err := datastore.SaveFallback(path, raw); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Feed for %s written to %s\n", args[0], path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.Print("neocli"))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default .neocli.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("feed-url", config.DefaultFeedURL, "NeoWs feed endpoint")
	rootCmd.PersistentFlags().String("cache-path", "", "feed cache file (default next to the executable)")
	rootCmd.PersistentFlags().String("fallback-file", config.FallbackFileName, "feed file used when the API is unreachable")

	for _, c := range []*cobra.Command{asteroidCmd, combineCmd} {
		c.Flags().Bool("offline", false, "never call the NASA API; use the cache and fallback file only")
		c.Flags().Bool("refresh", false, "bypass the cache and fetch from the NASA API")
		c.Flags().Bool("no-cache", false, "do not read or write the feed cache")
		c.Flags().StringP("output", "O", "json", "Output format: json, table, or tui")
	}
	asteroidCmd.Flags().IntP("index", "i", 0, "which NEO of the date to select (0 is the first)")
	asteroidCmd.Flags().StringP("metric", "m", "all", "what to show: all, gravity, or impact")
	asteroidCmd.Flags().BoolP("all", "a", false, "show every NEO of the date")
	combineCmd.Flags().Int("index1", 0, "which NEO of the first date to select")
	combineCmd.Flags().Int("index2", 0, "which NEO of the second date to select")

	planetsCmd.Flags().StringP("output", "O", "json", "Output format: json, table, info, or tui")
	planetsCmd.Flags().String("catalog", "", "planet catalog file (.csv or .toml)")

	cacheCmd.AddCommand(cacheListCmd, cachePurgeCmd, cacheExportCmd)
	rootCmd.AddCommand(asteroidCmd, combineCmd, planetsCmd, explainCmd, cacheCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
