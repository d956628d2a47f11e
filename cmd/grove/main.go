package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	v          *viper.Viper
	configFile string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:   "grove",
		Short: "grove makes predictions with decision tree models and ensembles",
		Long:  `A tool to make predictions with decision tree models and ensembles of them from their JSON definitions, and to evaluate them against datasets`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.init(cmd)
		},
		SilenceUsage: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&(config.configFile), "config", "", "path to a YAML file with values for any of the flags")
	flags.BoolP("verbose", "v", false, "log debug messages to STDERR")
	flags.String("log-level", "warn", "level of the messages logged to STDERR (debug, info, warn, error)")
	flags.StringP("source", "s", "", "where to retrieve definitions referenced by id: a directory, a redis://host:port address, a mongodb:// or postgresql:// URL, or a SQLite3 (.db) file")
	flags.String("source-table", "", "table or collection holding the definitions in SQL and MongoDB sources (defaults to definitions)")
	flags.String("redis-prefix", "", "prefix of the keys holding the definitions in a redis source")
	flags.String("redis-password", "", "password for a redis source")
	flags.Int("redis-db", 0, "database number for a redis source")
	flags.Duration("cache-ttl", 0, "time definitions retrieved from the source are cached for (disabled if 0)")
	rootCmd.AddCommand(versionCmd(), predictCmd(config), ensembleCmd(config), testCmd(config), showCmd(config))
	return rootCmd
}

// init binds the flags of the command to viper, along with GROVE_
// prefixed environment variables and the config file, and sets up
// logging
func (rc *rootCmdConfig) init(cmd *cobra.Command) error {
	rc.v.SetEnvPrefix("GROVE")
	rc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	rc.v.AutomaticEnv()
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()} {
		if err := rc.v.BindPFlags(fs); err != nil {
			return errors.Wrap(err, "binding flags")
		}
	}
	if rc.configFile != "" {
		rc.v.SetConfigFile(rc.configFile)
		rc.v.SetConfigType("yaml")
		if err := rc.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", rc.configFile)
		}
	}
	return setupLogging(rc.v.GetBool("verbose"), rc.v.GetString("log-level"))
}

// context returns a context cancelled on interrupt
func (rc *rootCmdConfig) context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
