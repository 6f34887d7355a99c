package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aprsmodem/internal/app"
)

func main() {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "aprsmodem",
		Short: "APRS AFSK software modem",
		Long: `APRS AFSK software modem.

Encodes APRS packets as AX.25 UI frames (optionally wrapped in an FX.25
Reed-Solomon envelope), modulates them as AFSK1200 audio, and decodes
packets back out of received audio.

Example usage:
  aprsmodem transmit --from N0CALL-10 --to APZ001 --path WIDE1-1,WIDE2-2 \
      --data "Hello, APRS!" --output packet.wav
  aprsmodem receive --input packet.wav`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				os.Exit(0)
			}
			if config.ConfigFile == "" {
				return nil
			}
			fc, err := app.LoadFileConfig(config.ConfigFile)
			if err != nil {
				return err
			}
			fc.Apply(&config, cmd.Flags().Changed)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&config.ConfigFile, "config", "c", "", "YAML config file")
	pf.IntVar(&config.SampleRate, "sample-rate", app.DefaultSampleRate, "Audio sample rate (Hz)")
	pf.IntVarP(&config.Options.BaudRate, "baud-rate", "b", app.DefaultBaudRate, "AFSK bitrate (baud)")
	pf.Float64Var(&config.Options.FMark, "mark", app.DefaultMark, "Mark tone (Hz)")
	pf.Float64Var(&config.Options.FSpace, "space", app.DefaultSpace, "Space tone (Hz)")
	pf.Float64Var(&config.Options.TXDelayMS, "tx-delay", app.DefaultTXDelayMS, "Preamble duration (ms)")
	pf.Float64Var(&config.Options.TXTailMS, "tx-tail", app.DefaultTXTailMS, "Postamble duration (ms)")
	pf.Float64VarP(&config.Options.Gain, "gain", "g", 1.0, "Linear output gain")
	pf.BoolVar(&config.Options.Preemphasis, "preemphasis", false, "Apply 75us FM pre-emphasis")
	pf.Float64Var(&config.Options.StartSilence, "start-silence", 0, "Leading silence (s)")
	pf.Float64Var(&config.Options.EndSilence, "end-silence", 0, "Trailing silence (s)")
	pf.StringVarP(&config.Modulator, "modulator", "m", "dds", "Modulator: dds, fast or cpfsk")
	pf.StringVar(&config.Converter, "converter", "basic", "Bitstream converter: basic or fx25")
	pf.BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	pf.BoolVar(&config.ShowVersion, "version", false, "Show version information")

	transmitCmd := &cobra.Command{
		Use:   "transmit",
		Short: "Render a packet to a WAV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApplication(config).Transmit()
		},
	}
	transmitCmd.Flags().StringVar(&config.From, "from", "", "Source callsign")
	transmitCmd.Flags().StringVar(&config.To, "to", "", "Destination callsign")
	transmitCmd.Flags().StringSliceVar(&config.Path, "path", nil, "Digipeater path")
	transmitCmd.Flags().StringVar(&config.Data, "data", "", "Information payload")
	transmitCmd.Flags().StringVarP(&config.Output, "output", "o", "packet.wav", "Output WAV file")

	receiveCmd := &cobra.Command{
		Use:   "receive",
		Short: "Decode packets from a WAV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApplication(config).Receive()
		},
	}
	receiveCmd.Flags().StringVarP(&config.Input, "input", "i", "", "Input WAV file")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Render the Bessel-null calibration tone to a WAV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApplication(config).Calibrate()
		},
	}
	calibrateCmd.Flags().StringVarP(&config.Output, "output", "o", "calibration.wav", "Output WAV file")
	calibrateCmd.Flags().Float64VarP(&config.Duration, "duration", "d", 5.0, "Tone length (s)")

	rootCmd.AddCommand(transmitCmd, receiveCmd, calibrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
