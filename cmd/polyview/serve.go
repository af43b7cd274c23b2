package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/spf13/cobra"
	"github.com/taigrr/polyview/internal/config"
	"github.com/taigrr/polyview/internal/input"
	"github.com/taigrr/polyview/internal/stream"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		serialPort string
		serialBaud int
	)
	cmd := &cobra.Command{
		Use:   "serve <model.obj|model.glb>",
		Short: "Stream the viewer to browsers over websockets",
		Long: `Serve a browser viewer at / and stream projected frames over /ws.

Browser key presses and, with --serial, control lines read from a serial
port drive the camera the same way the terminal keys do.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Addr = addr
			flags.SerialPort = serialPort
			flags.SerialBaud = serialBaud
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, args[0])
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default \":8080\")")
	cmd.Flags().StringVar(&serialPort, "serial", "", "Serial port to read control lines from")
	cmd.Flags().IntVar(&serialBaud, "baud", 0, "Serial baud rate (default 115200)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config, modelPath string) error {
	logger := log.Default()
	session := newSession(cfg, cfg.Width, cfg.Height, logger)
	bg := cfg.BackgroundColor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan input.Command, 64)
	send := func(cmd input.Command) {
		select {
		case commands <- cmd:
		default:
			logger.Println("Command queue full, dropping input")
		}
	}

	hub := stream.NewHub(logger)
	hub.OnMessage = func(msg string) {
		cmd, err := input.Parse(msg)
		if err != nil {
			logger.Printf("Ignoring client message %q: %v", msg, err)
			return
		}
		send(cmd)
	}

	if cfg.SerialPort != "" {
		src := input.SerialSource{Port: cfg.SerialPort, Baud: cfg.SerialBaud, Logger: logger}
		serialCmds := make(chan input.Command)
		go src.Run(ctx, serialCmds)
		go func() {
			for {
				select {
				case cmd := <-serialCmds:
					send(cmd)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	server := &http.Server{Addr: cfg.Addr, Handler: hub.Handler()}
	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("Serving viewer on http://%s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
		defer stop()
		server.Shutdown(shutdownCtx)
	}()

	loaded := session.LoadAsync(ctx, modelPath)

	ticker := time.NewTicker(time.Duration(harmonica.FPS(cfg.FPS) * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-serverErr:
			return fmt.Errorf("serve: %w", err)
		case err := <-loaded:
			loaded = nil
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
		case cmd := <-commands:
			cmd.Apply(session)
		case <-ticker.C:
			polys := session.Frame()
			frame := stream.NewFrame(cfg.Width, cfg.Height, bg, polys, session.Stats())
			if err := hub.Broadcast(frame); err != nil {
				logger.Printf("Broadcast error: %v", err)
			}
		}
	}
}
