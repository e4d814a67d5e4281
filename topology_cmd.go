package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yumyai/ggregion/logger"
	"github.com/yumyai/ggregion/pkg/config"
	ggdb "github.com/yumyai/ggregion/pkg/db"
	"github.com/yumyai/ggregion/pkg/handler"
	"github.com/yumyai/ggregion/pkg/render"
	"github.com/yumyai/ggregion/pkg/tree"
)

func newTopologyCmd(v *viper.Viper) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "topology <tree>",
		Short: "Render the rooted, ordered topology of a tree",
		Long: `Roots a Newick tree on the outgroup, puts it in the same leaf order the
region drawing uses and writes it as Graphviz DOT or SVG.`,
		Example: `  ggregion topology McrA.tree > McrA.dot
  ggregion topology McrA.tree --format svg -O McrA_topology.svg`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := tree.ReadNewickFile(args[0])
			if err != nil {
				return err
			}
			handler.StripMarkers(root)
			if o := handler.FindOutgroup(root, v.GetString(config.KeyOutgroup)); o != nil {
				root = tree.SetOutgroup(o)
			}
			root.Dist = 0
			tree.Canonicalize(root, func(n *tree.Node) {
				logger.Warn("Node found with more than two children", zap.Int("children", len(n.Children)))
			})

			dot := render.ToDOT(root)
			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				if data, err = render.RenderDOTSVG(cmd.Context(), dot); err != nil {
					return err
				}
			default:
				return usageError{fmt.Errorf("unknown format %q (want dot or svg)", format)}
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write topology: %w", err)
			}
			logger.Info("Topology written", zap.String("path", out), zap.Int("leaves", len(root.Leaves())))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&out, "out", "O", "", "output file (default stdout)")
	return cmd
}

func newInitDBCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create an empty gene/cluster database at --db",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, driver := v.GetString(config.KeyDB), v.GetString(config.KeyDriver)
			if driver == "" {
				driver = ggdb.DriverSQLite
			}
			return initDB(cmd.Context(), driver, path)
		},
	}
}

func initDB(ctx context.Context, driver, path string) error {
	if driver != ggdb.DriverSQLite && driver != ggdb.DriverDuckDB {
		return usageError{fmt.Errorf("%w: %q", ggdb.ErrUnknownDriver, driver)}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	db, err := sql.Open(driver, path)
	if err != nil {
		return fmt.Errorf("open %s database: %w", driver, err)
	}
	defer db.Close()
	if err := ggdb.CreateSchema(ctx, db); err != nil {
		return err
	}
	logger.Info("Database initialised", zap.String("path", path), zap.String("driver", driver))
	return nil
}
