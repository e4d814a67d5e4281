// Package config holds the run configuration shared by every stage of the
// renderer. Values come from flags, GGREGION_* environment variables,
// ~/.ggregion.yaml and the defaults below.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/yumyai/ggregion/internal/util"
	ggdb "github.com/yumyai/ggregion/pkg/db"
	"github.com/yumyai/ggregion/pkg/model"
)

const (
	DefaultImageSuffix  = "_temp.png"
	DefaultThreshold    = 3
	DefaultOutgroup     = "fig|190192.1"
	DefaultBPPerPixel   = 20
	DefaultRegionHeight = 225
	DefaultDBPath       = "./data/db/DATABASE.sqlite"
)

var (
	ErrMissingTree    = errors.New("-p (protein input tree) is required")
	ErrMissingWorkDir = errors.New("work dir does not exist")
)

// Viper keys.
const (
	KeyDB           = "db"
	KeyDriver       = "driver"
	KeyAliases      = "aliases"
	KeyOutDir       = "outdir"
	KeyWorkDir      = "workdir"
	KeyIsolate      = "isolate"
	KeyImageSuffix  = "image_suffix"
	KeyThreshold    = "threshold"
	KeyOutgroup     = "outgroup"
	KeyBPPerPixel   = "bp_per_px"
	KeyRegionHeight = "region_height"
	KeyStyle        = "style"
	KeyVerbose      = "verbose"
)

type Config struct {
	ProtTree string // -p
	OrgTree  string // -o
	RunID    string // -r
	Title    string // -t

	DBPath    string
	Driver    string
	AliasPath string

	OutDir      string
	WorkDir     string
	Isolate     bool
	ImageSuffix string

	Threshold    int
	Outgroup     string
	BPPerPixel   int
	RegionHeight int

	StylePath string
	Style     Style
	Verbose   bool
}

func Default() Config {
	return Config{
		DBPath:       DefaultDBPath,
		Driver:       ggdb.DriverSQLite,
		OutDir:       ".",
		WorkDir:      os.TempDir(),
		ImageSuffix:  DefaultImageSuffix,
		Threshold:    DefaultThreshold,
		Outgroup:     DefaultOutgroup,
		BPPerPixel:   DefaultBPPerPixel,
		RegionHeight: DefaultRegionHeight,
		Style:        DefaultStyle(),
	}
}

// SetDefaults registers the defaults with v so that config show lists them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyDB, d.DBPath)
	v.SetDefault(KeyDriver, d.Driver)
	v.SetDefault(KeyOutDir, d.OutDir)
	v.SetDefault(KeyImageSuffix, d.ImageSuffix)
	v.SetDefault(KeyThreshold, d.Threshold)
	v.SetDefault(KeyOutgroup, d.Outgroup)
	v.SetDefault(KeyBPPerPixel, d.BPPerPixel)
	v.SetDefault(KeyRegionHeight, d.RegionHeight)
}

// FromViper fills the store and rendering settings from v.
// The per-run values (trees, run id, title) are set by the caller.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Default()
	if s := v.GetString(KeyDB); s != "" {
		cfg.DBPath = s
	}
	if s := v.GetString(KeyDriver); s != "" {
		cfg.Driver = s
	}
	cfg.AliasPath = v.GetString(KeyAliases)
	if s := v.GetString(KeyOutDir); s != "" {
		cfg.OutDir = s
	}
	if s := v.GetString(KeyWorkDir); s != "" {
		cfg.WorkDir = s
	}
	cfg.Isolate = v.GetBool(KeyIsolate)
	if s := v.GetString(KeyImageSuffix); s != "" {
		cfg.ImageSuffix = s
	}
	if v.IsSet(KeyThreshold) {
		cfg.Threshold = v.GetInt(KeyThreshold)
	}
	if s := v.GetString(KeyOutgroup); s != "" {
		cfg.Outgroup = s
	}
	if v.IsSet(KeyBPPerPixel) {
		cfg.BPPerPixel = v.GetInt(KeyBPPerPixel)
	}
	if v.IsSet(KeyRegionHeight) {
		cfg.RegionHeight = v.GetInt(KeyRegionHeight)
	}
	cfg.Verbose = v.GetBool(KeyVerbose)

	cfg.StylePath = v.GetString(KeyStyle)
	if cfg.StylePath != "" {
		style, err := LoadStyle(cfg.StylePath)
		if err != nil {
			return cfg, err
		}
		cfg.Style = style
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ProtTree == "" {
		return ErrMissingTree
	}
	switch c.Driver {
	case ggdb.DriverSQLite, ggdb.DriverDuckDB:
	default:
		return fmt.Errorf("%w: %q", ggdb.ErrUnknownDriver, c.Driver)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %d", c.Threshold)
	}
	if c.BPPerPixel <= 0 {
		return fmt.Errorf("bp_per_px must be positive, got %d", c.BPPerPixel)
	}
	if c.RegionHeight <= 0 {
		return fmt.Errorf("region_height must be positive, got %d", c.RegionHeight)
	}
	if !util.DirExists(c.WorkDir) {
		return fmt.Errorf("%w: %s", ErrMissingWorkDir, c.WorkDir)
	}
	return nil
}

// AliasFile is the alias table path. Without an explicit path it sits next to
// the database directory: <root>/db/<file> gives <root>/aliases/aliases.
func (c *Config) AliasFile() string {
	if c.AliasPath != "" {
		return c.AliasPath
	}
	root := filepath.Dir(filepath.Dir(c.DBPath))
	return filepath.Join(root, "aliases", "aliases")
}

// RegionImagePath is where the neighborhood PNG of geneID is written.
func (c *Config) RegionImagePath(geneID string) (string, error) {
	gid, err := model.ParseGeneID(geneID)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.WorkDir, gid.OrganismID()+gid.Peg+c.ImageSuffix), nil
}

// IsolateWorkDir points WorkDir at a fresh per-run directory under the
// current one and creates it.
func (c *Config) IsolateWorkDir() (string, error) {
	dir := filepath.Join(c.WorkDir, "ggregion-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	c.WorkDir = dir
	return dir, nil
}

// SVGPath and PNGPath are the two composite outputs for the run title.
func (c *Config) SVGPath() string {
	return filepath.Join(c.OutDir, c.Title+"_region_tree.svg")
}

func (c *Config) PNGPath() string {
	return filepath.Join(c.OutDir, c.Title+"_cluster_tree.png")
}
