// Package utils holds the configuration, logging and terminal helpers shared by the commands.
package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DisposaBoy/JsonConfigReader"
	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// ConfigStructure is structure of main configuration
type ConfigStructure struct {
	// Coding
	WordLength      uint   `json:"wordLength"       yaml:"word_length"`
	Mode            string `json:"mode"             yaml:"mode"`
	MaxContextOrder int    `json:"maxContextOrder"  yaml:"max_context_order"`

	// Output
	LogLevel     string `json:"logLevel"         yaml:"log_level"`
	LogFormat    string `json:"logFormat"        yaml:"log_format"`
	ShowProgress bool   `json:"showProgress"     yaml:"show_progress"`
}

// Config is configuration for the commands, default values
var Config = ConfigStructure{
	WordLength:      16,
	Mode:            "B",
	MaxContextOrder: 2,
	LogLevel:        "info",
	LogFormat:       "default",
	ShowProgress:    true,
}

// ConfigLocations returns the files searched when no configuration file is given, in order.
func ConfigLocations() []string {
	return []string{
		filepath.Join(os.Getenv("HOME"), ".ppm.conf"),
		"/etc/ppm.conf",
	}
}

// LoadConfig reads filename as JSON, comments allowed, or failing that as YAML.
func LoadConfig(filename string, config *ConfigStructure) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	decJSON := json.NewDecoder(JsonConfigReader.New(f))
	if err = decJSON.Decode(config); err != nil {
		_, _ = f.Seek(0, 0)
		decYAML := yaml.NewDecoder(f)
		if err2 := decYAML.Decode(config); err2 != nil {
			err = fmt.Errorf("invalid yaml (%s) or json (%s)", err2, err)
		} else {
			err = nil
		}
	}
	return err
}

// SaveConfig write configuration to json file
func SaveConfig(filename string, config *ConfigStructure) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	encoded, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	_, err = f.Write(encoded)
	return err
}

// Validate checks the coding parameters and returns the parsed mode.
func (conf *ConfigStructure) Validate() (ac.Mode, error) {
	if err := ac.CheckWordLength(conf.WordLength); err != nil {
		return 0, errors.Wrap(err, "wordLength")
	}
	mode, err := ac.ParseMode(conf.Mode)
	if err != nil {
		return 0, errors.Wrap(err, "mode")
	}
	if conf.MaxContextOrder < 0 {
		return 0, errors.Errorf("maxContextOrder %d is negative", conf.MaxContextOrder)
	}
	return mode, nil
}
