package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ggregion configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/" + configBase + ".yaml.",
		Example: `  ggregion config                                 # show effective config
  ggregion config set db /data/db/DATABASE.sqlite  # default database
  ggregion config get threshold                    # get a value`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout(), v)
		},
	}

	cmd.AddCommand(newConfigSetCmd(v))
	cmd.AddCommand(newConfigGetCmd(v))

	return cmd
}

func newConfigSetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), v, args[0], args[1])
		},
	}
}

func newConfigGetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), v, args[0])
		},
	}
}

func runConfigShow(w io.Writer, v *viper.Viper) error {
	settings := v.AllSettings()
	if len(settings) == 0 {
		fmt.Fprintf(w, "# No configuration set. Config file: ~/%s.yaml\n", configBase)
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

// runConfigSet writes key into the config file only, so flag defaults
// are not persisted alongside it.
func runConfigSet(w io.Writer, v *viper.Viper, key, value string) error {
	cfgFile := v.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, configBase+".yaml")
	}

	file := viper.New()
	file.SetConfigFile(cfgFile)
	if _, err := os.Stat(cfgFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	// Parse boolean-like and numeric values
	switch value {
	case "true", "yes", "on":
		file.Set(key, true)
	case "false", "no", "off":
		file.Set(key, false)
	default:
		if n, err := strconv.Atoi(value); err == nil {
			file.Set(key, n)
		} else {
			file.Set(key, value)
		}
	}

	if err := file.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	v.Set(key, file.Get(key))

	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(w io.Writer, v *viper.Viper, key string) error {
	val := v.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, val)
	return nil
}
