// Package recolour implements the per-file recolouring pipeline: catalog
// lookup, base colour acquisition, presence validation, pixel replacement
// and output.
package recolour

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/silcolour/internal/catalog"
	"github.com/jmylchreest/silcolour/internal/colour"
	"github.com/jmylchreest/silcolour/internal/image"
	"github.com/jmylchreest/silcolour/internal/security"
)

// Catalog resolves a file stem to its catalog entry.
type Catalog interface {
	Lookup(cellID string) (catalog.Entry, bool)
}

// Config holds the settings shared by every job of a batch.
type Config struct {
	// OutputDir receives the recoloured images.
	OutputDir string

	// Darkening is the factor applied to the target colour to derive the
	// replacement for the dark base colour.
	Darkening float64

	// Base fixes the colours to replace. When nil they are discovered from
	// each image's palette.
	Base *colour.BaseColours

	// Loader and Saver default to the filesystem implementations.
	Loader image.Loader
	Saver  image.Saver

	// Logger receives per-job diagnostics. Defaults to a null logger.
	Logger hclog.Logger
}

// Job recolours single files. A Job holds no per-file state and may be
// run from several goroutines at once.
type Job struct {
	catalog Catalog
	cfg     Config
	logger  hclog.Logger
}

// New creates a Job reading entries from cat.
func New(cat Catalog, cfg Config) (*Job, error) {
	if cat == nil {
		return nil, fmt.Errorf("nil catalog")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	if err := colour.ValidateFactor(cfg.Darkening); err != nil {
		return nil, err
	}
	if cfg.Loader == nil {
		cfg.Loader = image.NewFileLoader()
	}
	if cfg.Saver == nil {
		cfg.Saver = image.NewFileSaver()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Job{
		catalog: cat,
		cfg:     cfg,
		logger:  logger.Named("job"),
	}, nil
}

// Run recolours the image at path. A file is written only when the result
// is ResultSuccess. Codes 1-3 are outcomes, not errors; a non-nil error is
// always paired with ResultFailed.
func (j *Job) Run(path string) (Result, error) {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	log := j.logger.With("file", name)

	entry, ok := j.catalog.Lookup(stem)
	if !ok {
		log.Debug("no catalog entry for file", "cell_id", stem)
		return ResultNotFound, nil
	}
	log = log.With("cell_id", entry.CellID, "cluster", entry.Cluster)

	raster, err := j.cfg.Loader.Load(path)
	if err != nil {
		return ResultFailed, err
	}

	hist := colour.NewHistogram(raster)

	var base colour.BaseColours
	if j.cfg.Base != nil {
		base = *j.cfg.Base
	} else {
		base, err = hist.BaseColours()
		if err != nil {
			return ResultFailed, fmt.Errorf("discovering base colours of %s: %w", name, err)
		}
		log.Debug("discovered base colours", "light", base.Light.Channels(), "dark", base.Dark.Channels())
	}

	if !hist.Contains(base.Light) {
		log.Debug("light colour not present in image", "light", base.Light.Channels())
		return ResultLightAbsent, nil
	}
	if !hist.Contains(base.Dark) {
		log.Debug("dark colour not present in image", "dark", base.Dark.Channels())
		return ResultDarkAbsent, nil
	}

	target, err := colour.HexToColour(entry.Color)
	if err != nil {
		return ResultFailed, fmt.Errorf("catalog colour for %s: %w", entry.CellID, err)
	}
	replacer, err := colour.NewReplacer(base, target, j.cfg.Darkening)
	if err != nil {
		return ResultFailed, err
	}
	recoloured, stats := replacer.Apply(raster)

	outName := OutputName(path, entry.Cluster)
	if err := security.ValidateOutputName(outName, j.cfg.OutputDir); err != nil {
		return ResultFailed, err
	}
	outPath := filepath.Join(j.cfg.OutputDir, outName)
	if err := j.cfg.Saver.Save(outPath, recoloured); err != nil {
		return ResultFailed, fmt.Errorf("saving %s: %w", outPath, err)
	}

	written := replacer.Target()
	log.Trace("recoloured image written", "output", outPath,
		"light", written.Light.Hex(), "light_pixels", stats.Light,
		"dark", written.Dark.Hex(), "dark_pixels", stats.Dark)
	return ResultSuccess, nil
}

// OutputName derives the output file name for the input at path: "-sil"
// becomes "-colored", spaces become underscores, and the cluster label is
// prepended with an underscore separator. Inputs in a format that cannot be
// written, such as WebP, are given a .gif extension.
func OutputName(path, cluster string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); !slices.Contains(image.SupportedOutputExtensions(), strings.ToLower(ext)) {
		name = strings.TrimSuffix(name, ext) + ".gif"
	}
	name = strings.ReplaceAll(name, "-sil", "-colored")
	name = strings.ReplaceAll(name, " ", "_")
	return cluster + "_" + name
}
