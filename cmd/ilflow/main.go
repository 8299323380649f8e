// Command ilflow reconstructs the block structure of method bodies.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ilflow",
		Short:         "Basic blocks and exception scopes of CIL and ARM64 code",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			processGlobalFlags()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (yaml, json or toml)")
	pf.Bool("strict", false, "Fail on the first malformed method instead of skipping")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.Int("max-instructions", 0, "Per-method decode cap (0 = default)")
	for _, name := range []string{"config", "strict", "log-level", "no-color", "max-instructions"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(newParseCmd(), newBatchCmd(), newARM64Cmd())
	return root
}

// initConfig wires the optional config file and ILFLOW_* environment
// variables under the command line flags.
func initConfig() error {
	viper.SetEnvPrefix("ilflow")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fatal(err)
	}
}
