// Package app assembles the modem from configuration: logger, audio
// streams, modulator, converter, and the transmit, receive and calibrate
// entry points the CLI calls into.
package app

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"aprsmodem/internal/afsk"
	"aprsmodem/internal/audio"
	"aprsmodem/internal/ax25"
	"aprsmodem/internal/bitstream"
	"aprsmodem/internal/modem"
)

// Application represents the main application
type Application struct {
	config Config
	logger *logrus.Logger
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	config.applyDefaults()

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
	}
}

// Transmit renders the configured packet to the output WAV file.
func (app *Application) Transmit() error {
	if app.config.Output == "" {
		return fmt.Errorf("no output file configured")
	}

	packet := ax25.Packet{
		From: app.config.From,
		To:   app.config.To,
		Path: app.config.Path,
		Data: []byte(app.config.Data),
	}

	app.logger.WithFields(logrus.Fields{
		"packet": packet.String(),
		"output": app.config.Output,
	}).Info("Transmitting packet")

	out, err := audio.NewWAVWriter(app.config.Output, app.config.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}

	m, err := app.buildModem(out)
	if err != nil {
		out.Close()
		return err
	}

	if err := m.Transmit(packet); err != nil {
		out.Close()
		return fmt.Errorf("transmit failed: %w", err)
	}
	return out.Close()
}

// Receive decodes packets from the input WAV file and prints them in TNC2
// monitor format.
func (app *Application) Receive() error {
	if app.config.Input == "" {
		return fmt.Errorf("no input file configured")
	}

	src, err := audio.NewWAVReader(app.config.Input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer src.Close()

	m, err := app.buildModem(discardWriter{rate: src.SampleRate()})
	if err != nil {
		return err
	}

	demod := afsk.NewDFTDemodulator(
		app.config.Options.FMark, app.config.Options.FSpace,
		app.config.Options.BaudRate, src.SampleRate())

	packets, err := m.Receive(src, demod)
	if err != nil {
		return fmt.Errorf("receive failed: %w", err)
	}

	app.logger.WithField("count", len(packets)).Info("Receive scan complete")
	for _, p := range packets {
		fmt.Fprintln(os.Stdout, p.String())
	}
	return nil
}

// Calibrate renders the Bessel-null tone pattern to the output WAV file.
func (app *Application) Calibrate() error {
	if app.config.Output == "" {
		return fmt.Errorf("no output file configured")
	}

	out, err := audio.NewWAVWriter(app.config.Output, app.config.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}

	opts := app.config.Options
	mod := afsk.NewBesselNull(opts.FMark, opts.FSpace, opts.BaudRate, app.config.SampleRate, 0.08)

	m, err := modem.New(out, mod, bitstream.Basic{}, opts, app.logger)
	if err != nil {
		out.Close()
		return err
	}

	bits := int(app.config.Duration * float64(opts.BaudRate))
	if bits < 1 {
		bits = 1
	}

	app.logger.WithFields(logrus.Fields{
		"seconds": app.config.Duration,
		"bits":    bits,
		"output":  app.config.Output,
	}).Info("Rendering calibration tone")

	if err := m.TransmitBits(make([]byte, bits)); err != nil {
		out.Close()
		return fmt.Errorf("calibration render failed: %w", err)
	}
	return out.Close()
}

// buildModem wires the configured modulator and converter to the sink.
func (app *Application) buildModem(out audio.Writer) (*modem.Modem, error) {
	opts := app.config.Options

	mod, err := app.buildModulator()
	if err != nil {
		return nil, err
	}

	var conv bitstream.Converter
	switch app.config.Converter {
	case "", "basic":
		conv = bitstream.Basic{}
	case "fx25":
		conv = bitstream.FX25{Logger: app.logger}
	default:
		return nil, fmt.Errorf("unknown converter %q", app.config.Converter)
	}

	return modem.New(out, mod, conv, opts, app.logger)
}

func (app *Application) buildModulator() (modem.Modulator, error) {
	opts := app.config.Options
	rate := app.config.SampleRate

	switch app.config.Modulator {
	case "", "dds":
		return afsk.NewDDS(opts.FMark, opts.FSpace, opts.BaudRate, rate, 0.3), nil
	case "fast":
		return afsk.NewFastDDS[float64](opts.FMark, opts.FSpace, opts.BaudRate, rate), nil
	case "cpfsk":
		return afsk.NewCPFSK(opts.FMark, opts.FSpace, opts.BaudRate, rate), nil
	default:
		return nil, fmt.Errorf("unknown modulator %q", app.config.Modulator)
	}
}

// discardWriter satisfies the sink contract for receive-only modems.
type discardWriter struct {
	rate int
}

func (d discardWriter) SampleRate() int                { return d.rate }
func (d discardWriter) Write(s []float64) (int, error) { return len(s), nil }
func (d discardWriter) Close() error                   { return nil }
