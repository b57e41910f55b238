package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"josephlewis.net/minsh/core"
	"josephlewis.net/minsh/core/config"
	"josephlewis.net/minsh/core/logger"
)

var (
	cfgPath string
	oneShot string
)

func loadConfig() (*config.Configuration, error) {
	fsys := afero.NewOsFs()
	configuration, err := config.Load(fsys, cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		// No config is fine for a shell; fall back to the built-in defaults.
		return config.Default(fsys, cfgPath), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands.
// It runs the interactive interpreter.
var rootCmd = &cobra.Command{
	Use:   "minsh",
	Short: "Minimal command interpreter",
	Long: `A small shell supporting pipes, standard stream redirection and the
cd and exit builtins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		var events *logger.Recorder
		if appLog, err := configuration.OpenAppLog(); err != nil {
			log.Printf("Event log unavailable: %v", err)
		} else if appLog != nil {
			defer appLog.Close()
			events = logger.NewRecorder(appLog)
		}

		shell, err := core.NewShell(configuration, events)
		if err != nil {
			return err
		}
		defer shell.Close()

		events.SessionStart()
		defer events.SessionEnd()

		if oneShot != "" {
			_, err := shell.Eval(oneShot)
			return err
		}
		return shell.Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&oneShot, "command", "c", "", "run a single command line and exit")
}
