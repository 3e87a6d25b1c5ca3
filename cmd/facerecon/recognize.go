package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/imageprep"
)

func newRecognizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recognize <image>",
		Short: "Recognize the face in a photo",
		Long: `Uploads a photo to the backend and prints the recognition result.

The photo (jpeg, png, webp or bmp) is downscaled to FACERECON_MAX_IMAGE_DIM
and re-encoded as JPEG before upload. A match on a wanted person sets
alert_active.

Examples:
  facerecon recognize capture.jpg
  facerecon recognize --output yaml capture.png
  facerecon recognize --raw capture.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := a.loadImage(args[0], mustGetBool(cmd, "raw"))
			if err != nil {
				return err
			}
			return a.render(cmd, a.session.CaptureAndRecognize(cmd.Context(), image))
		},
	}

	cmd.Flags().Bool("raw", false, "Upload the file as is, without resizing or re-encoding")
	return cmd
}

// loadImage reads a photo from disk and normalizes it unless raw is set.
func (a *app) loadImage(path string, raw bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if raw {
		return data, nil
	}

	prepared, info, err := imageprep.Prepare(data, a.cfg.MaxImageDim)
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", path, err)
	}
	a.logger.Debug("image prepared",
		slog.String("path", path),
		slog.Int("width", info.Width),
		slog.Int("height", info.Height),
		slog.Int("bytes", len(prepared)),
	)
	return prepared, nil
}
