package render

import (
	"fmt"
	"strings"
)

// Control is a set of camera inputs active during one control tick.
type Control uint16

const (
	ControlLeft      Control = 1 << iota // Strafe along -right
	ControlRight                         // Strafe along +right
	ControlForward                       // Move along +forward
	ControlBack                          // Move along -forward
	ControlUp                            // Move along +up
	ControlDown                          // Move along -up
	ControlYawLeft                       // Turn left
	ControlYawRight                      // Turn right
	ControlPitchUp                       // Look up
	ControlPitchDown                     // Look down
	ControlReset                         // Restore the home position and angles
)

var controlNames = []struct {
	c    Control
	name string
}{
	{ControlReset, "reset"},
	{ControlLeft, "a"},
	{ControlRight, "d"},
	{ControlForward, "w"},
	{ControlBack, "s"},
	{ControlUp, "q"},
	{ControlDown, "e"},
	{ControlYawLeft, "left"},
	{ControlYawRight, "right"},
	{ControlPitchUp, "up"},
	{ControlPitchDown, "down"},
}

// ParseControl maps a key name ("w", "left", "reset", ...) to its Control.
func ParseControl(name string) (Control, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, cn := range controlNames {
		if cn.name == name {
			return cn.c, nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", name)
}

// Has reports whether every bit of o is set in c.
func (c Control) Has(o Control) bool {
	return o != 0 && c&o == o
}

func (c Control) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, cn := range controlNames {
		if c.Has(cn.c) {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "+")
}
