package input

import (
	"bufio"
	"context"
	"io"
	"log"
	"time"

	"go.bug.st/serial"
)

// ReadCommands parses r line by line and sends each valid command to out.
// Invalid lines are logged and skipped. It returns when r is exhausted,
// on a read error, or when ctx is done.
func ReadCommands(ctx context.Context, r io.Reader, out chan<- Command, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		cmd, err := Parse(line)
		if err != nil {
			logger.Printf("Ignoring control line %q: %v", line, err)
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// SerialSource reads control lines from a serial port, reopening the port
// whenever it fails.
type SerialSource struct {
	Port   string
	Baud   int
	Retry  time.Duration // Delay between reconnect attempts; zero means 5s
	Logger *log.Logger
}

// Run reads commands into out until ctx is done.
func (s SerialSource) Run(ctx context.Context, out chan<- Command) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	retry := s.Retry
	if retry <= 0 {
		retry = 5 * time.Second
	}
	mode := &serial.Mode{
		BaudRate: s.Baud,
	}

	for {
		port, err := serial.Open(s.Port, mode)
		if err != nil {
			logger.Printf("Error opening serial port %s: %v. Retrying in %v...", s.Port, err, retry)
		} else {
			logger.Printf("Successfully opened serial port: %s", s.Port)
			err = s.read(ctx, port, out, logger)
			port.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Printf("Serial port %s closed: %v. Reconnecting...", s.Port, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry):
		}
	}
}

func (s SerialSource) read(ctx context.Context, port serial.Port, out chan<- Command, logger *log.Logger) error {
	// Closing the port unblocks a pending Read when ctx ends
	stop := context.AfterFunc(ctx, func() { port.Close() })
	defer stop()
	return ReadCommands(ctx, port, out, logger)
}
