package imagepkg

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
)

type Field string

const (
	FieldName        Field = "name"
	FieldDateOfBirth Field = "date_of_birth"
	FieldMobile      Field = "mobile"
	FieldSport       Field = "sport"
	FieldAddress     Field = "address"
)

type Weight int

const (
	Regular Weight = iota
	Bold
)

// Overflow decides what happens to text wider than TextField.MaxWidth.
type Overflow int

const (
	// OverflowVisible draws the whole string, possibly past the canvas edge.
	OverflowVisible Overflow = iota
	// OverflowEllipsis cuts the string and appends "...".
	OverflowEllipsis
)

const ellipsis = "..."

// TextField places one value on the card. X and Y are the top-left corner
// of the text box; when Center is set X is ignored and the text is centered
// on the canvas width.
type TextField struct {
	Field    Field
	X, Y     int
	Weight   Weight
	Center   bool
	Indent   int // leading spaces, measured in the field's face
	MaxWidth int // 0 = unlimited
	Overflow Overflow
}

type Layout struct {
	Width, Height int
	PhotoSize     int
	PhotoAt       image.Point
	Fields        []TextField
}

// DefaultLayout is the 400x550 card with a 120px photo at (130,150).
func DefaultLayout() Layout {
	return Layout{
		Width:     400,
		Height:    550,
		PhotoSize: 120,
		PhotoAt:   image.Pt(130, 150),
		Fields: []TextField{
			{Field: FieldName, Y: 300, Weight: Bold, Center: true},
			{Field: FieldDateOfBirth, X: 120, Y: 345, Weight: Regular, Indent: 4},
			{Field: FieldMobile, X: 120, Y: 385, Weight: Regular, Indent: 4},
			{Field: FieldSport, X: 175, Y: 423, Weight: Regular, Indent: 4},
			{Field: FieldAddress, X: 120, Y: 463, Weight: Regular, Indent: 4},
		},
	}
}

// Placement is a resolved TextField: the final string, its face and the
// top-left corner it is drawn at.
type Placement struct {
	Field Field
	Text  string
	Face  font.Face
	X, Y  float64
	Width float64
}

// Baseline is the y coordinate gg draws the string at.
func (p Placement) Baseline() float64 {
	return p.Y + ascent(p.Face)
}

// Place resolves every field of l against values. Fields without a value
// are skipped.
func (l Layout) Place(values map[Field]string, faces map[Weight]font.Face) []Placement {
	out := make([]Placement, 0, len(l.Fields))
	for _, f := range l.Fields {
		text, ok := values[f.Field]
		if !ok {
			continue
		}
		face := faces[f.Weight]
		indent := measure(face, strings.Repeat(" ", f.Indent))
		if f.MaxWidth > 0 && f.Overflow == OverflowEllipsis {
			text = truncate(face, text, float64(f.MaxWidth)-indent)
		}
		w := measure(face, text)

		x := float64(f.X) + indent
		if f.Center {
			x = math.Floor((float64(l.Width) - w) / 2)
		}
		out = append(out, Placement{
			Field: f.Field,
			Text:  text,
			Face:  face,
			X:     x,
			Y:     float64(f.Y),
			Width: w,
		})
	}
	return out
}

func truncate(face font.Face, s string, max float64) string {
	if measure(face, s) <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		cut := strings.TrimRight(string(r), " ") + ellipsis
		if measure(face, cut) <= max {
			return cut
		}
	}
	return ""
}
