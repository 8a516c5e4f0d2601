package stats

import "github.com/padraicbc/f1globe/models"

const (
	// DefaultBarColor fills bars whose constructor has no team color.
	DefaultBarColor = "#C83E4D"
	// DefaultLineColor strokes season lines without a team color.
	DefaultLineColor = "rgba(248, 210, 210, 0.81)"
)

// Palette maps constructor ids to display colors.
type Palette map[string]string

// ColorMap builds the palette from the team color table. If a
// constructor appears more than once the last row wins.
func ColorMap(colors []models.TeamColor) Palette {
	p := make(Palette, len(colors))
	for _, c := range colors {
		if c.ConstructorID == "" || c.Color == "" {
			continue
		}
		p[c.ConstructorID] = c.Color
	}
	return p
}

// Lookup reports the team color for a constructor, if any.
func (p Palette) Lookup(constructorID string) (string, bool) {
	c, ok := p[constructorID]
	return c, ok
}

// Resolve returns the team color or fallback.
func (p Palette) Resolve(constructorID, fallback string) string {
	if c, ok := p[constructorID]; ok {
		return c
	}
	return fallback
}
