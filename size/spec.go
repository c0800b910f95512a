package size

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is the resize semantics of a Spec
type Mode uint8

// consts of Mode
const (
	ModeUnknown Mode = iota
	ModeFit
	ModeStretch
	ModePad
	ModeCrop
)

const (
	// DefaultBackground fills the canvas of pad mode
	DefaultBackground = "#ffffff"
)

var modeNames = map[Mode]string{
	ModeFit:     "fit",
	ModeStretch: "stretch",
	ModePad:     "pad",
	ModeCrop:    "crop",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode returns ModeUnknown for unrecognized text
func ParseMode(s string) Mode {
	for m, name := range modeNames {
		if name == s {
			return m
		}
	}
	return ModeUnknown
}

// Spec describes one named resize operation
type Spec struct {
	Alias       string `json:"alias"`
	Mode        Mode   `json:"mode"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Background  string `json:"background"`
	UsePrevious bool   `json:"usePrevious,omitempty"`
}

// Valid reports whether both target dimensions are positive
func (s Spec) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Spec) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "a:%s,m:%s,b:%s,", s.Alias, s.Mode, s.Background)
	if s.UsePrevious {
		sb.WriteString("u:true,")
	}
	fmt.Fprintf(&sb, "s:%dx%d", s.Width, s.Height)
	return sb.String()
}

// Parse reads a spec like "a:thumb,m:crop,b:#000,u:true,s:100x50".
//
// Tokens are applied in order and never fail: unknown keys and malformed
// tokens are skipped, a bad size leaves the Spec invalid. Unless an "a" token
// came first, the raw value of "s" becomes the alias.
func Parse(text string) Spec {
	sp := Spec{Mode: ModeFit, Background: DefaultBackground}
	for _, param := range strings.Split(text, ",") {
		kv := strings.Split(param, ":")
		if len(kv) != 2 {
			continue
		}
		key, value := kv[0], kv[1]
		switch key {
		case "a":
			sp.Alias = value
		case "m":
			sp.Mode = ParseMode(value)
		case "b":
			sp.Background = value
		case "u":
			sp.UsePrevious = value == "true"
		case "s":
			if sp.Alias == "" {
				sp.Alias = value
			}
			if w, h, ok := ParseDimensions(value); ok {
				sp.Width, sp.Height = w, h
			}
		}
	}
	return sp
}

// ParseDimensions splits "WxH", ok is false when there are not exactly two parts.
// Non-numeric parts become 0.
func ParseDimensions(s string) (width, height int, ok bool) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return
	}
	width, _ = strconv.Atoi(parts[0])
	height, _ = strconv.Atoi(parts[1])
	ok = true
	return
}
