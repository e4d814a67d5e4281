package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/ggregion/internal/util"
	"github.com/yumyai/ggregion/logger"
	"github.com/yumyai/ggregion/pkg/config"
	"github.com/yumyai/ggregion/pkg/handler"
)

const (
	appName    = "ggregion"
	envPrefix  = "GGREGION"
	configBase = ".ggregion"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var (
		cfgFile  string
		protTree string
		orgTree  string
		runID    string
		title    string
	)

	root := &cobra.Command{
		Use:   appName + " -p <protein tree> [-r runid] [-o organism tree] [-t title]",
		Short: "Draw a protein tree with the gene neighborhood of every leaf",
		Long: `ggregion renders a phylogenetic protein tree in which every leaf carries a
linear map of its genomic neighborhood. Genes are coloured by cluster; clusters
seen more than --threshold times get their own colour, the rest are grey.

Writes <title>_region_tree.svg and <title>_cluster_tree.png to --outdir.`,
		Example: `  ggregion -p McrA.tree -r all_I_2.0_c_0.4_m_maxbit
  ggregion -p McrA.tree -t McrA --db ./data/db/DATABASE.sqlite --outdir out`,
		Version:       version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			if v.GetBool(config.KeyVerbose) {
				logger.SetLevel(zapcore.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if protTree == "" {
				return usageError{config.ErrMissingTree}
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			cfg.ProtTree, cfg.OrgTree, cfg.RunID, cfg.Title = protTree, orgTree, runID, title
			if cfg.Title == "" {
				cfg.Title = util.BaseNoExt(cfg.ProtTree)
			}
			if !util.FileExists(cfg.ProtTree) {
				return fmt.Errorf("protein tree %s not found", cfg.ProtTree)
			}

			res, err := handler.Run(cmd.Context(), cfg, logger.L())
			if err != nil {
				return err
			}
			for _, leaf := range res.Skipped {
				logger.Debug("Leaf without neighborhood", zap.String("leaf", leaf))
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.SVGPath)
			fmt.Fprintln(cmd.OutOrStdout(), res.PNGPath)
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	f := root.Flags()
	f.StringVarP(&protTree, "prottree", "p", "", "protein tree (Newick)")
	f.StringVarP(&orgTree, "orgtree", "o", "", "organism tree (Newick)")
	f.StringVarP(&runID, "runid", "r", "", "cluster run id (default: the only run in the database)")
	f.StringVarP(&title, "treetitle", "t", "", "tree title (default: protein tree file name)")

	d := config.Default()
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/"+configBase+".yaml)")
	pf.String(config.KeyDB, d.DBPath, "gene/cluster database")
	pf.String(config.KeyDriver, d.Driver, "database driver: sqlite or duckdb")
	pf.String(config.KeyAliases, "", "gene alias file (default <db root>/aliases/aliases)")
	pf.String(config.KeyOutDir, d.OutDir, "output directory")
	pf.String(config.KeyWorkDir, d.WorkDir, "directory for the per-leaf region images")
	pf.Bool(config.KeyIsolate, false, "write region images to a fresh per-run directory")
	pf.String(config.KeyStyle, "", "TOML style file")
	pf.Int(config.KeyThreshold, d.Threshold, "clusters seen more than this many times get their own colour")
	pf.String(config.KeyOutgroup, d.Outgroup, "organism to root the tree on")
	pf.BoolP(config.KeyVerbose, "v", false, "enable verbose logging")

	pf.VisitAll(func(fl *pflag.Flag) {
		if fl.Name == "config" {
			return
		}
		_ = v.BindPFlag(fl.Name, fl)
	})
	config.SetDefaults(v)

	root.AddCommand(newConfigCmd(v))
	root.AddCommand(newTopologyCmd(v))
	root.AddCommand(newInitDBCmd(v))
	root.AddCommand(newVersionCmd())
	return root
}

// initConfig reads the config file and GGREGION_* environment variables.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(configBase)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if cfgFile == "" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	logger.Debug("Using config file", zap.String("path", filepath.Clean(v.ConfigFileUsed())))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (%s) built %s\n", appName, version, commit, date)
		},
	}
}

// usageArgs reports positional argument mistakes as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
