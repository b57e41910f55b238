package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	// ConfigurationName is the file name searched for in the config directory.
	ConfigurationName = "config.yaml"
	// AppLogName is the default structured event log.
	AppLogName = "app.log"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// DefaultPrompt mirrors the classic "<cwd>> " shell prompt.
const DefaultPrompt = `\w> `

type Configuration struct {
	configFs         afero.Fs
	configurationDir string

	// Prompt is the template shown before each input line. \w expands to the
	// working directory and \$ to the prompt sigil.
	Prompt string `json:"prompt"`

	// HistoryFile stores input history between sessions, resolved relative
	// to the configuration directory. Empty disables history.
	HistoryFile string `json:"history_file"`

	// AppLog is the newline-delimited JSON event log, resolved relative to
	// the configuration directory. Empty disables event logging.
	AppLog string `json:"app_log"`

	// Color controls prompt colorization.
	Color string `json:"color" validate:"omitempty,oneof=always auto never"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewOsFs()
	}
	return c.configFs
}

// HistoryFilePath resolves the history file against the configuration
// directory, or returns "" if history is disabled.
func (c *Configuration) HistoryFilePath() string {
	if c.HistoryFile == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(c.configurationDir, c.HistoryFile)
}

// OpenAppLog opens the event log in an append only state, creating it if
// needed. Returns nil if event logging is disabled.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	if c.AppLog == "" {
		return nil, nil
	}
	name := c.AppLog
	if !filepath.IsAbs(name) {
		name = filepath.Join(c.configurationDir, name)
	}
	return c.fs().OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the event log read-only.
func (c *Configuration) ReadAppLog() (afero.File, error) {
	name := c.AppLog
	if !filepath.IsAbs(name) {
		name = filepath.Join(c.configurationDir, name)
	}
	return c.fs().OpenFile(name, os.O_RDONLY, 0600)
}

// Default returns the embedded built-in configuration, rooted at dir. It
// panics on failure because a broken default is a build error, not a runtime
// condition.
func Default(fsys afero.Fs, dir string) *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	out.configFs = fsys
	out.configurationDir = dir
	return &out
}
