package handler

// DI for the annotator and formatter alike.

import (
	"context"

	"go.uber.org/zap"

	"github.com/yumyai/ggregion/pkg/config"
	ggdb "github.com/yumyai/ggregion/pkg/db"
	"github.com/yumyai/ggregion/pkg/middle"
	"github.com/yumyai/ggregion/pkg/model"
	"github.com/yumyai/ggregion/pkg/render"
)

type RegionContext struct {
	Store   *ggdb.GGDB
	Aliases model.Aliases
	Config  config.Config
	RunID   string
	logger  *zap.Logger
}

func NewRegionContext(store *ggdb.GGDB, aliases model.Aliases, cfg config.Config, runID string) *RegionContext {
	return &RegionContext{
		Store:   store,
		Aliases: aliases,
		Config:  cfg,
		RunID:   runID,
		logger:  zap.NewNop(),
	}
}

func (rc *RegionContext) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	rc.logger = l
}

// log is the context's logger for one call, tagged with the stage run id.
func (rc *RegionContext) log(ctx context.Context) *zap.Logger {
	return middle.WithRunID(ctx, rc.logger)
}

func (rc *RegionContext) drawOptions() render.DrawOptions {
	s := rc.Config.Style
	return render.DrawOptions{
		Height:         rc.Config.RegionHeight,
		BPPerPixel:     rc.Config.BPPerPixel,
		LabelSize:      s.LabelSize,
		AliasLabelSize: s.AliasLabelSize,
		LabelAngle:     s.LabelAngle,
		Border:         s.Border,
		CenterBorder:   s.CenterBorder,
	}
}
