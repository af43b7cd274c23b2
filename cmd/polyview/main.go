// polyview - Terminal 3D Mesh Viewer
// View OBJ and GLB meshes as projected polygons in the terminal, a browser
// or a snapshot image.
//
// Controls:
//
//	A/D         - Move left/right
//	W/S         - Move forward/back
//	Q/E         - Move up/down
//	Left/Right  - Turn left/right
//	Up/Down     - Look up/down
//	R           - Reset camera
//	X/Y/Z       - Toggle spin around an axis
//	M           - Reset mesh rotation
//	F           - Toggle filled polygons
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/polyview/internal/config"
	"github.com/taigrr/polyview/internal/viewer"
)

var (
	configPath string
	flags      config.Flags
)

func main() {
	cmd := &cobra.Command{
		Use:   "polyview <model.obj|model.glb>",
		Short: "Terminal 3D Mesh Viewer",
		Long: `polyview - Terminal 3D Mesh Viewer

View OBJ and GLB meshes as projected polygons in your terminal.

Controls:
  A/D         - Move left/right
  W/S         - Move forward/back
  Q/E         - Move up/down
  Arrows      - Turn and look
  R           - Reset camera
  X/Y/Z       - Toggle spin
  M           - Reset mesh
  F           - Toggle fill
  Esc         - Quit`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runView(cmd.Context(), cfg, args[0])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to JSON config file")
	pf.IntVar(&flags.Width, "width", 0, "Viewport width in pixels (snapshot and serve)")
	pf.IntVar(&flags.Height, "height", 0, "Viewport height in pixels (snapshot and serve)")
	pf.IntVar(&flags.FPS, "fps", 0, "Target FPS")
	pf.StringVar(&flags.Cull, "cull", "", "Culling mode: sentinel or clip")
	pf.BoolVar(&flags.Fill, "fill", false, "Fill polygons instead of outlining them")
	pf.Float64Var(&flags.SpinRate, "spin", 0, "Spin rate in radians per second")

	cmd.AddCommand(newInfoCmd(), newSnapshotCmd(), newServeCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, cmd)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return cfg, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newSession builds a viewer session sized width x height from cfg.
func newSession(cfg config.Config, width, height int, logger *log.Logger) *viewer.Session {
	return viewer.New(viewer.Options{
		Width:    width,
		Height:   height,
		FPS:      cfg.FPS,
		Camera:   cfg.Camera(),
		Cull:     cfg.CullMode(),
		Fill:     cfg.Fill,
		SpinRate: cfg.SpinRate,
		Scale:    cfg.Scale,
		Logger:   logger,
	})
}

func statusLine(st viewer.Stats) string {
	return fmt.Sprintf("%s  %d vertices  %d polygons (%d drawn)  %d materials  camera (%.1f, %.1f, %.1f)",
		st.Name, st.Vertices, st.Polygons, st.Drawn, st.Materials,
		st.Camera.X, st.Camera.Y, st.Camera.Z)
}
