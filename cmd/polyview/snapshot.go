package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/polyview/internal/config"
	"github.com/taigrr/polyview/pkg/models"
	"github.com/taigrr/polyview/pkg/render"
)

type snapshotOptions struct {
	output      string
	supersample int
	frames      int
	spin        string
	axes        bool
}

func newSnapshotCmd() *cobra.Command {
	var opts snapshotOptions
	cmd := &cobra.Command{
		Use:   "snapshot <model.obj|model.glb>",
		Short: "Render one frame to an image file",
		Long:  "Render a mesh to a PNG, WebP or TGA image. The format is chosen by the output extension.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runSnapshot(cfg, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "snapshot.png", "Output image (.png, .webp or .tga)")
	cmd.Flags().IntVar(&opts.supersample, "supersample", 1, "Render at N times the size, then downsample")
	cmd.Flags().IntVar(&opts.frames, "frames", 1, "Frames to advance before capturing")
	cmd.Flags().StringVar(&opts.spin, "rotate", "", "Axes to spin while advancing frames, e.g. \"xy\"")
	cmd.Flags().BoolVar(&opts.axes, "axes", false, "Overlay the labeled coordinate axes")
	return cmd
}

func runSnapshot(cfg config.Config, modelPath string, opts snapshotOptions) error {
	if _, err := render.FormatFromPath(opts.output); err != nil {
		return err
	}
	ss := max(opts.supersample, 1)
	w, h := cfg.Width*ss, cfg.Height*ss

	session := newSession(cfg, w, h, log.New(io.Discard, "", 0))
	if err := session.Load(modelPath); err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	spin := strings.ToLower(opts.spin)
	session.SetRotationFlags(strings.Contains(spin, "x"), strings.Contains(spin, "y"), strings.Contains(spin, "z"))

	var polys []render.Polygon
	for range max(opts.frames, 1) {
		polys = session.Frame()
	}

	fb := render.NewFramebuffer(w, h)
	fb.Clear(cfg.BackgroundColor())
	fb.DrawPolygons(polys)
	if opts.axes {
		proj := render.Projector{Cull: cfg.CullMode()}
		fb.DrawPolygons(proj.Project(models.NewAxes(), session.Camera(), session.Projection()))
	}

	img := fb.ToImage()
	if ss > 1 {
		img = render.Downsample(img, cfg.Width, cfg.Height)
	}
	if err := render.SaveImage(opts.output, img); err != nil {
		return err
	}

	st := session.Stats()
	fmt.Printf("Saved %s (%dx%d, %d of %d polygons drawn)\n", opts.output, cfg.Width, cfg.Height, st.Drawn, st.Polygons)
	return nil
}
