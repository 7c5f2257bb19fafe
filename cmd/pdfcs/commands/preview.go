package commands

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdftools/contentstream/interp"
	"github.com/pdftools/contentstream/object"
	"github.com/pdftools/contentstream/raster"
)

var (
	previewWidth  int
	previewHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview <content-stream-file> <out.png>",
	Short: "Render a crude bounding-box preview PNG",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		sink := raster.NewPreviewSink(previewWidth, previewHeight)
		ip, err := interp.New(data, object.Resources{}, sink, demoOptions())
		if err != nil {
			return fmt.Errorf("constructing interpreter: %w", err)
		}
		if err := ip.Run(); err != nil {
			return fmt.Errorf("interpreting %s: %w", args[0], err)
		}
		sink.Finish()

		out, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[1], err)
		}
		defer out.Close()
		if err := png.Encode(out, sink.Image()); err != nil {
			return fmt.Errorf("encoding %s: %w", args[1], err)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewWidth, "width", 612, "preview canvas width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", 792, "preview canvas height in pixels")
}
