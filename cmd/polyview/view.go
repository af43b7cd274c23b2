package main

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/polyview/internal/config"
	"github.com/taigrr/polyview/internal/input"
	"github.com/taigrr/polyview/pkg/render"
)

// keyNames maps terminal key strings to control line tokens.
var keyNames = map[string]string{
	"a": "a", "d": "d", "w": "w", "s": "s", "q": "q", "e": "e",
	"left": "left", "right": "right", "up": "up", "down": "down",
	"r": "reset",
	"x": "x", "y": "y", "z": "z", "m": "m", "f": "f",
}

// keyCommand translates a key press into a command.
func keyCommand(ev uv.KeyPressEvent) (input.Command, bool) {
	for key, name := range keyNames {
		if ev.MatchString(key) {
			cmd, err := input.Parse(name)
			return cmd, err == nil
		}
	}
	return input.Command{}, false
}

func runView(ctx context.Context, cfg config.Config, modelPath string) error {
	bg := cfg.BackgroundColor()

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// One terminal cell holds two vertically stacked pixels; the last row
	// is kept for the status line.
	session := newSession(cfg, width, 2*(height-1), nil)
	if err := session.Load(modelPath); err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	fb := render.NewFramebuffer(width, 2*(height-1))

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan input.Command, 16)
	resized := make(chan [2]int, 1)

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-resized:
				default:
				}
				resized <- [2]int{ev.Width, ev.Height}

			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					cancel()
					return
				}
				if cmd, ok := keyCommand(ev); ok {
					select {
					case commands <- cmd:
					default: // Drop input while the loop is behind
					}
				}
			}
		}
	}()

	cleanup := func() {
		term.Erase()
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ticker := time.NewTicker(time.Duration(harmonica.FPS(cfg.FPS) * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case size := <-resized:
			width, height = size[0], size[1]
			term.Erase()
			term.Resize(width, height)
			fb = render.NewFramebuffer(width, 2*(height-1))
			session.Resize(fb.Width, fb.Height)
			continue
		case cmd := <-commands:
			cmd.Apply(session)
			continue
		case <-ticker.C:
		}

		polys := session.Frame()
		fb.Clear(bg)
		fb.DrawPolygons(polys)

		area := uv.Rect(0, 0, width, height-1)
		fb.Draw(term, area)
		render.DrawLabels(term, area, polys)
		drawStatus(term, width, height-1, statusLine(session.Stats()))

		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}
	}
}

// drawStatus writes text on terminal row y, padding the rest of the row.
func drawStatus(scr uv.Screen, width, y int, text string) {
	style := uv.Style{Fg: color.RGBA{200, 200, 200, 255}}
	runes := []rune(text)
	for x := 0; x < width; x++ {
		content := " "
		if x < len(runes) {
			content = string(runes[x])
		}
		scr.SetCell(x, y, &uv.Cell{Content: content, Width: 1, Style: style})
	}
}
