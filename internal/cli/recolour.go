package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/silcolour/internal/batch"
	"github.com/jmylchreest/silcolour/internal/catalog"
	"github.com/jmylchreest/silcolour/internal/config"
	"github.com/jmylchreest/silcolour/internal/image"
	"github.com/jmylchreest/silcolour/internal/logger"
	"github.com/jmylchreest/silcolour/internal/recolour"
)

// recolourOptions holds the recolour command flags.
type recolourOptions struct {
	configPath  string
	logFile     string
	darkening   float64
	output      string
	pattern     string
	lightColour colourFlag
	darkColour  colourFlag
	discover    bool
	workers     int
	strict      bool
}

func newRecolourCmd() *cobra.Command {
	opts := &recolourOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "recolour <catalog.csv> <input-dir>",
		Short: "Recolour a directory of silhouettes",
		Long: `Recolour every silhouette in a directory using a catalog of clusters.

Each image is matched to the catalog row whose cell_ID equals the file name
without its extension. The light base colour is replaced with the row's
colour and the dark base colour with the same colour darkened by the
darkening factor. The output is written as <cluster>_<name>, with "-sil"
replaced by "-colored" and spaces by underscores.

The catalog is a CSV file (optionally gzip, bzip2 or xz compressed) with the columns
cell_ID, cluster and color.

Examples:
  # Recolour with the default base colours
  silcolour recolour clusters.csv silhouettes/ -o coloured/

  # Detect the base colours of each image
  silcolour recolour --discover-colours clusters.csv silhouettes/

  # Explicit base colours and a stronger edge
  silcolour recolour --light-colour 200,200,255 --dark-colour 20,20,120 -d 0.4 clusters.csv silhouettes/`,
		Aliases: []string{"recolor"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecolour(cmd, opts, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&opts.darkening, "darkening", "d", defaults.Darkening, "darkening factor for the dark colour (0.0-1.0)")
	flags.StringVarP(&opts.output, "output", "o", defaults.OutputDir, "output directory (must exist)")
	flags.StringVarP(&opts.pattern, "pattern", "p", defaults.Pattern, "glob selecting input files")
	flags.Var(&opts.lightColour, "light-colour", "light base colour to replace (default "+config.DefaultLightColour+")")
	flags.Var(&opts.darkColour, "dark-colour", "dark base colour to replace (default "+config.DefaultDarkColour+")")
	flags.BoolVar(&opts.discover, "discover-colours", false, "detect the base colours of each image from its palette")
	flags.IntVarP(&opts.workers, "workers", "w", defaults.Workers, "number of parallel jobs (0 = number of CPUs)")
	flags.BoolVar(&opts.strict, "strict", false, "reject catalogs with duplicate cell_ID values")
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.logFile, "log-file", "", "also write logs to a rotating file")

	cmd.MarkFlagsMutuallyExclusive("discover-colours", "light-colour")
	cmd.MarkFlagsMutuallyExclusive("discover-colours", "dark-colour")
	return cmd
}

// applyFlags overlays flags given on the command line onto cfg.
func applyFlags(cmd *cobra.Command, opts *recolourOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if changed(flags, "darkening") {
		cfg.Darkening = opts.darkening
	}
	if changed(flags, "output") {
		cfg.OutputDir = opts.output
	}
	if changed(flags, "pattern") {
		cfg.Pattern = opts.pattern
	}
	if changed(flags, "light-colour") {
		cfg.LightColour = opts.lightColour.String()
	}
	if changed(flags, "dark-colour") {
		cfg.DarkColour = opts.darkColour.String()
	}
	if changed(flags, "discover-colours") {
		cfg.DiscoverColours = opts.discover
	}
	if changed(flags, "workers") {
		cfg.Workers = opts.workers
	}
	if changed(flags, "strict") {
		cfg.StrictCatalog = opts.strict
	}
	if changed(flags, "log-file") {
		cfg.Logging.File = opts.logFile
	}

	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		cfg.Logging.Level = "debug"
	}
	if quiet, _ := flags.GetBool("quiet"); quiet {
		cfg.Verbose = false
		cfg.Logging.Level = "error"
	}
}

// runRecolour executes the recolour command.
func runRecolour(cmd *cobra.Command, opts *recolourOptions, catalogPath, inputDir string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.CheckOutputDir(); err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Output: cmd.ErrOrStderr(),
		File:   cfg.LogFile(),
	})
	if err != nil {
		return err
	}
	defer log.Close()

	base, warnings, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	cat, err := catalog.Load(catalogPath, catalog.LoadOptions{Strict: cfg.StrictCatalog})
	if err != nil {
		return err
	}
	if dups := cat.Duplicates(); len(dups) > 0 {
		log.Warn("duplicate cell_ID values in catalog, keeping the first row of each", "cell_ids", strings.Join(dups, ", "))
	}
	log.Debug("catalog loaded", "path", catalogPath, "entries", cat.Len())

	files, err := image.ScanDirectory(inputDir, cfg.Pattern)
	if err != nil {
		return err
	}

	job, err := recolour.New(cat, recolour.Config{
		OutputDir: cfg.OutputDir,
		Darkening: cfg.Darkening,
		Base:      base,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	driver := batch.NewDriver(job,
		batch.WithWorkers(cfg.Workers),
		batch.WithProgress(newProgress(cmd.ErrOrStderr(), quiet)),
		batch.WithLogger(log),
	)
	if base != nil {
		log.Info("recolouring", "files", len(files), "workers", driver.Workers(), "light", base.Light.Channels(), "dark", base.Dark.Channels())
	} else {
		log.Info("recolouring", "files", len(files), "workers", driver.Workers(), "discover_colours", true)
	}

	summary := driver.Run(files)
	if !quiet || !summary.AllSucceeded() {
		writeSummary(cmd.OutOrStdout(), summary, cfg.Verbose)
	}
	return nil
}

// writeSummary prints the batch tallies as a table.
func writeSummary(w io.Writer, s *batch.Summary, verbose bool) {
	table := NewTable([]string{"Result", "Files"})
	table.SetAlignRight(1)
	table.AddRow([]string{"total", strconv.Itoa(s.Total)})
	table.AddRow([]string{recolour.ResultSuccess.String(), strconv.Itoa(s.Succeeded())})

	if !s.AllSucceeded() {
		for _, r := range []recolour.Result{recolour.ResultNotFound, recolour.ResultLightAbsent, recolour.ResultDarkAbsent, recolour.ResultFailed} {
			table.AddRow([]string{r.String(), strconv.Itoa(s.Count(r))})
		}
	}
	fmt.Fprint(w, table.Render())

	if !s.AllSucceeded() && !verbose {
		fmt.Fprintln(w, "\nSome files were not recoloured. Run again with --verbose for per-file details.")
	}
}
