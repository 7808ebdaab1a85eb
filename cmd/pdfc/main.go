package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/pdfc/config"
	"github.com/dhamidi/pdfc/pdf/edition"
)

// globals holds the persistent flags and the configuration they refine.
type globals struct {
	configFile string
	edition    string
	verbosity  int
	logFile    string

	cfg config.Config
	fs  afero.Fs
}

// errFound is returned by commands that ran fine but found problems in
// their input. main exits with status 1 without printing it.
var errFound = errors.New("problems found")

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		if !errors.Is(err, errFound) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	g := &globals{fs: fsys}

	rootCmd := &cobra.Command{
		Use:           "pdfc",
		Short:         "A lossless PDF syntax toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	g.addFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newLexCmd(g))
	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newGrammarCmd())

	return rootCmd
}

func (g *globals) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&g.configFile, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&g.edition, "edition", "", "PDF edition to parse with, e.g. 1.7")
	flags.CountVarP(&g.verbosity, "verbose", "v", "log verbosity, repeat for more")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
}

// load reads the configuration, applies flags on top and sets up logging.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.fs, g.configFile, os.LookupEnv)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("edition") {
		cfg.Edition = g.edition
	}
	if flags.Changed("verbose") {
		cfg.LogVerbosity = g.verbosity
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg

	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.LogVerbosity, path)
	return nil
}

func (g *globals) editionValue() edition.Edition {
	return g.cfg.ParsedEdition()
}
