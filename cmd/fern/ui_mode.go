package main

import (
	"fmt"
	"io"
	"strings"
)

// switchMode — значение флагов вида auto|on|off (--ui, --color).
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

// parseSwitch принимает auto|on|off без учёта регистра; пустое значение — auto.
func parseSwitch(flag, value string) (switchMode, error) {
	switch m := switchMode(strings.TrimSpace(strings.ToLower(value))); m {
	case "":
		return modeAuto, nil
	case modeAuto, modeOn, modeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves auto by asking whether w is a terminal.
func (m switchMode) enabled(w io.Writer) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	return isTerminal(w)
}
