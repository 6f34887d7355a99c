package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"aprsmodem/internal/modem"
)

// Default configuration constants
const (
	DefaultSampleRate = 48000  // 48 kHz audio
	DefaultBaudRate   = 1200   // AFSK1200
	DefaultMark       = 1200.0 // mark tone (Hz)
	DefaultSpace      = 2200.0 // space tone (Hz)
	DefaultTXDelayMS  = 300.0  // preamble duration
	DefaultTXTailMS   = 45.0   // postamble duration
)

// Config holds application configuration
type Config struct {
	SampleRate int
	Modulator  string // dds, fast or cpfsk
	Converter  string // basic or fx25
	Options    modem.Options

	From string
	To   string
	Path []string
	Data string

	Input    string  // WAV file to receive from
	Output   string  // WAV file to render to
	Duration float64 // calibration tone length, seconds

	ConfigFile  string
	Verbose     bool
	ShowVersion bool
}

// applyDefaults fills the fields the modem cannot derive itself; modem
// option clamping happens inside modem.New.
func (c *Config) applyDefaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Options.BaudRate <= 0 {
		c.Options.BaudRate = DefaultBaudRate
	}
	if c.Options.FMark == 0 {
		c.Options.FMark = DefaultMark
	}
	if c.Options.FSpace == 0 {
		c.Options.FSpace = DefaultSpace
	}
}

// FileConfig mirrors the YAML config file. Pointer fields distinguish
// "absent" from an explicit zero so the file only overrides what it names.
type FileConfig struct {
	SampleRate   *int     `yaml:"sample_rate"`
	BaudRate     *int     `yaml:"baud_rate"`
	TXDelay      *float64 `yaml:"tx_delay"`
	TXTail       *float64 `yaml:"tx_tail"`
	Gain         *float64 `yaml:"gain"`
	Preemphasis  *bool    `yaml:"preemphasis"`
	StartSilence *float64 `yaml:"start_silence"`
	EndSilence   *float64 `yaml:"end_silence"`
	FMark        *float64 `yaml:"f_mark"`
	FSpace       *float64 `yaml:"f_space"`
	Modulator    *string  `yaml:"modulator"`
	Converter    *string  `yaml:"converter"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// Apply copies the file's settings into c, skipping any option whose flag
// was set explicitly on the command line; changed reports that per flag
// name.
func (fc FileConfig) Apply(c *Config, changed func(name string) bool) {
	setInt := func(flag string, dst *int, src *int) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}
	setFloat := func(flag string, dst *float64, src *float64) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}

	setInt("sample-rate", &c.SampleRate, fc.SampleRate)
	setInt("baud-rate", &c.Options.BaudRate, fc.BaudRate)
	setFloat("tx-delay", &c.Options.TXDelayMS, fc.TXDelay)
	setFloat("tx-tail", &c.Options.TXTailMS, fc.TXTail)
	setFloat("gain", &c.Options.Gain, fc.Gain)
	setFloat("start-silence", &c.Options.StartSilence, fc.StartSilence)
	setFloat("end-silence", &c.Options.EndSilence, fc.EndSilence)
	setFloat("mark", &c.Options.FMark, fc.FMark)
	setFloat("space", &c.Options.FSpace, fc.FSpace)

	if fc.Preemphasis != nil && !changed("preemphasis") {
		c.Options.Preemphasis = *fc.Preemphasis
	}
	if fc.Modulator != nil && !changed("modulator") {
		c.Modulator = *fc.Modulator
	}
	if fc.Converter != nil && !changed("converter") {
		c.Converter = *fc.Converter
	}
}
