// Package cli implements the fileview-cli commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys. Each can be set in the config file, as a FILEVIEW_*
// environment variable, or with the flag of the same name.
const (
	KeyLogLevel    = "log_level"
	KeyIcons       = "icons"
	KeyTemplates   = "templates"
	KeyOpenAPI     = "openapi"
	KeyInteractive = "interactive"

	envPrefix         = "FILEVIEW"
	defaultConfigFile = ".fileview.yaml"
)

type app struct {
	config     *viper.Viper
	log        *logrus.Logger
	configFile string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{config: viper.New(), log: logrus.New()}

	root := &cobra.Command{
		Use:           "fileview-cli",
		Short:         "Format file records and validate file manager forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default $HOME/"+defaultConfigFile+")")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.String("icons", "", "icon set YAML overriding the embedded icons")
	flags.String("templates", "", "directory with listing and form template overrides")
	flags.String("openapi", "", "OpenAPI document describing the forms")

	bindings := map[string]string{
		KeyLogLevel:  "log-level",
		KeyIcons:     "icons",
		KeyTemplates: "templates",
		KeyOpenAPI:   "openapi",
	}
	for key, name := range bindings {
		_ = a.config.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newSizeCmd(),
		newTimeCmd(),
		newCapitalizeCmd(),
		newIsDirCmd(),
		newRenderCmd(a),
		newFormsCmd(a),
		newValidateCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a.config.SetEnvPrefix(envPrefix)
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()

	if err := a.readConfig(); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(a.config.GetString(KeyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	a.log.SetLevel(level)
	if used := a.config.ConfigFileUsed(); used != "" {
		a.log.WithField("file", used).Debug("loaded config")
	}
	return nil
}

func (a *app) readConfig() error {
	path := a.configFile
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, defaultConfigFile)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}

	a.config.SetConfigFile(path)
	a.config.SetConfigType("yaml")
	if err := a.config.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}
