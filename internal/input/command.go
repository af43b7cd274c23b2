// Package input turns text control lines from terminals, browsers and
// serial devices into viewer commands.
package input

import (
	"fmt"
	"strings"

	"github.com/taigrr/polyview/internal/viewer"
	"github.com/taigrr/polyview/pkg/math3d"
	"github.com/taigrr/polyview/pkg/render"
)

// Action is a viewer-level command that is not camera movement.
type Action int

const (
	ActionNone Action = iota
	ActionToggleX
	ActionToggleY
	ActionToggleZ
	ActionResetMesh
	ActionToggleFill
)

var actionNames = map[string]Action{
	"x":    ActionToggleX,
	"y":    ActionToggleY,
	"z":    ActionToggleZ,
	"m":    ActionResetMesh,
	"f":    ActionToggleFill,
	"fill": ActionToggleFill,
}

// Command is one parsed input line.
type Command struct {
	Control render.Control
	Actions []Action
}

// Parse reads a line of control names separated by spaces or '+', such as
// "w", "w+left" or "reset". Camera names combine into one Control; viewer
// names ("x", "y", "z", "m", "f") become Actions.
func Parse(line string) (Command, error) {
	var cmd Command
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t' || r == '\r'
	})
	if len(tokens) == 0 {
		return cmd, fmt.Errorf("empty command")
	}
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if a, ok := actionNames[tok]; ok {
			cmd.Actions = append(cmd.Actions, a)
			continue
		}
		c, err := render.ParseControl(tok)
		if err != nil {
			return Command{}, err
		}
		cmd.Control |= c
	}
	return cmd, nil
}

// Apply runs the command against s.
func (c Command) Apply(s *viewer.Session) {
	for _, a := range c.Actions {
		switch a {
		case ActionToggleX:
			s.ToggleRotation(math3d.AxisX)
		case ActionToggleY:
			s.ToggleRotation(math3d.AxisY)
		case ActionToggleZ:
			s.ToggleRotation(math3d.AxisZ)
		case ActionResetMesh:
			s.ResetMesh()
		case ActionToggleFill:
			s.SetFill(!s.Fill())
		}
	}
	if c.Control != 0 {
		s.Control(c.Control)
	}
}
