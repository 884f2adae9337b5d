package component

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color is the closed set of block and collector colours.
type Color uint8

const (
	Red Color = iota
	Green
	Blue
	Orange
	Purple
)

// Colors lists every Color in declaration order.
var Colors = []Color{Red, Green, Blue, Orange, Purple}

var colorNames = [...]string{"red", "green", "blue", "orange", "purple"}

// RGBA is a linear colour with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// canonical render values
var colorRGBA = [...]RGBA{
	{0.926, 0.078, 0.238, 1.0}, // crimson
	{0.196, 0.804, 0.196, 1.0}, // lime green
	{0.000, 0.749, 1.000, 1.0}, // deep sky blue
	{0.953, 0.640, 0.375, 1.0}, // sandy brown
	{0.598, 0.195, 0.797, 1.0}, // dark orchid
}

var titleCaser = cases.Title(language.English)

func (c Color) Valid() bool { return int(c) < len(colorNames) }

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// DisplayName is the capitalised name used in log lines and the HUD.
func (c Color) DisplayName() string {
	return titleCaser.String(c.String())
}

// RGBA returns the canonical render value.
func (c Color) RGBA() RGBA {
	if !c.Valid() {
		return RGBA{A: 1}
	}
	return colorRGBA[c]
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal color %d: out of range", uint8(c))
	}
	return []byte(colorNames[c]), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts a colour name in any case.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Side tells which team an entity plays for.
type Side uint8

const (
	SidePlayer Side = iota + 1
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "Player"
	case SideEnemy:
		return "Enemy"
	}
	return "Unknown"
}

// Affiliation tags an entity as Player(color) or Enemy(color). Set at
// creation and never changed.
type Affiliation struct {
	Side  Side
	Color Color
}

func PlayerOf(c Color) Affiliation { return Affiliation{Side: SidePlayer, Color: c} }
func EnemyOf(c Color) Affiliation  { return Affiliation{Side: SideEnemy, Color: c} }

func (a Affiliation) String() string {
	return fmt.Sprintf("%s(%s)", a.Side, a.Color.DisplayName())
}
