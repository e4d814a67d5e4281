package handler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/yumyai/ggregion/internal/util"
	"github.com/yumyai/ggregion/pkg/config"
	ggdb "github.com/yumyai/ggregion/pkg/db"
	"github.com/yumyai/ggregion/pkg/middle"
	"github.com/yumyai/ggregion/pkg/model"
	"github.com/yumyai/ggregion/pkg/render"
	"github.com/yumyai/ggregion/pkg/tree"
)

// Result summarises a finished render.
type Result struct {
	RunID        string
	SVGPath      string
	PNGPath      string
	Leaves       int
	Regions      int
	Skipped      []string
	Distinct     int
	LowFrequency int
}

// Run renders the protein tree in cfg with its gene neighborhoods.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Title == "" {
		cfg.Title = util.BaseNoExt(cfg.ProtTree)
	}
	runTag := middle.GenerateRunID()

	if cfg.Isolate {
		dir, err := cfg.IsolateWorkDir()
		if err != nil {
			return nil, err
		}
		logger.Info("Using isolated work dir", zap.String("dir", dir), zap.String("run", runTag))
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	store, err := ggdb.Open(cfg.Driver, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	logger.Info("Open database on", zap.String("DB_LOC", cfg.DBPath), zap.String("driver", store.Driver()))

	aliases, err := model.LoadAliases(cfg.AliasFile())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("No alias file, labelling genes by peg number", zap.String("path", cfg.AliasFile()))
	case err != nil:
		return nil, err
	}

	runID, err := model.ResolveRunID(ctx, store, cfg.RunID)
	if err != nil {
		return nil, err
	}

	root, err := tree.ReadNewickFile(cfg.ProtTree)
	if err != nil {
		return nil, err
	}
	if cfg.OrgTree != "" {
		orgTree, err := tree.ReadNewickFile(cfg.OrgTree)
		if err != nil {
			return nil, err
		}
		logger.Info("Organism tree loaded", zap.String("path", cfg.OrgTree), zap.Int("leaves", len(orgTree.Leaves())))
	}

	rc := NewRegionContext(store, aliases, cfg, runID)
	rc.SetLogger(logger)
	style := tree.NewStyle()
	style.ShowLeafName = false

	res := &Result{RunID: runID, SVGPath: cfg.SVGPath(), PNGPath: cfg.PNGPath()}
	var ann *Annotation
	var layout *render.Layout

	stages := []struct {
		name string
		fn   middle.Stage
	}{
		{"annotate", func(ctx context.Context) error {
			ann, err = rc.DrawTreeRegions(ctx, root, style)
			return err
		}},
		{"format", func(ctx context.Context) error {
			root, err = rc.PrettyTree(ctx, root, style, cfg.Title)
			return err
		}},
		{"layout", func(ctx context.Context) error {
			layout, err = render.LayoutTree(root, style, render.DefaultLayoutOptions())
			return err
		}},
		{"svg", func(ctx context.Context) error {
			return render.WriteSVG(layout, res.SVGPath)
		}},
		{"png", func(ctx context.Context) error {
			return render.WriteTrimmedPNG(layout, res.PNGPath)
		}},
	}
	for _, s := range stages {
		stage := middle.Chain(s.fn, middle.RunIDMiddleware(runTag), middle.LoggingMiddleware(logger, s.name))
		if err := stage(ctx); err != nil {
			return nil, err
		}
	}

	res.Leaves = len(root.Leaves())
	res.Regions = len(ann.Regions)
	res.Skipped = ann.Skipped
	res.Distinct = len(ann.Legend.Distinct)
	res.LowFrequency = len(ann.Legend.LowFrequency)
	logger.Info("Render finished",
		zap.String("run", runTag),
		zap.String("svg", res.SVGPath),
		zap.String("png", res.PNGPath),
		zap.Int("leaves", res.Leaves),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}
