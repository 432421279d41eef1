// Command svcutil bundles operator utilities for voice-conversion training
// runs: checkpoint discovery, mel spectrogram plots and f0 inspection.
package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/checkpoint"
	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/pitch"
	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/spectrogram"
	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/visual"
	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/wavio"
)

func main() {
	root := &cobra.Command{
		Use:           "svcutil",
		Short:         "Training support utilities for voice conversion models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(latestCmd(), melCmd(), f0Cmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "svcutil:", err)
		os.Exit(1)
	}
}

func latestCmd() *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "latest <dir>",
		Short: "Print the newest checkpoint path in a model directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := checkpoint.Latest(args[0], pattern)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", checkpoint.DefaultPattern, "checkpoint filename glob")
	return cmd
}

func melCmd() *cobra.Command {
	var numMels int
	cmd := &cobra.Command{
		Use:   "mel <in.wav> <out.png>",
		Short: "Render the mel spectrogram of a WAV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, sampleRate, err := wavio.Load(args[0])
			if err != nil {
				return err
			}

			params := spectrogram.DefaultMelParams(sampleRate)
			params.NumMels = numMels
			mel, err := spectrogram.LogMel(samples, params)
			if err != nil {
				return err
			}

			rows, cols := mel.Dims()
			data := make([][]float64, rows)
			for r := range data {
				data[r] = make([]float64, cols)
				for c := 0; c < cols; c++ {
					data[r][c] = mel.At(r, c)
				}
			}
			img, err := visual.SpectrogramRGB(data)
			if err != nil {
				return err
			}

			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := png.Encode(f, img.ToRGBA()); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().IntVar(&numMels, "mels", 80, "number of mel channels")
	return cmd
}

func f0Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "f0 <in.wav>",
		Short: "Print the f0 contour and coarse pitch bins of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, sampleRate, err := wavio.Load(args[0])
			if err != nil {
				return err
			}

			tracker := pitch.NewTracker(pitch.DefaultTrackerParams(sampleRate))
			contour, err := tracker.Track(samples)
			if err != nil {
				return err
			}
			bins, err := pitch.QuantizeAll(contour)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, f0 := range contour {
				fmt.Fprintf(out, "%d\t%.2f\t%d\n", i, f0, bins[i])
			}
			return nil
		},
	}
	return cmd
}
