package lexisphere

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// labelFontSize is the point size term labels are rasterized at. Labels
// are scaled down by perspective at draw time, so this is the near-plane
// size.
const labelFontSize = 16.0

// LabelFont wraps Ebitengine's text/v2 for TrueType label rendering.
type LabelFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadLabelFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadLabelFont(ttfData []byte, size float64) (*LabelFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("lexisphere: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &LabelFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *LabelFont) MeasureString(s string) (width, height float64) {
	w, h := text.Measure(s, f.face, f.lh)
	return w, h
}

// LineHeight returns the vertical distance between baselines.
func (f *LabelFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2
// rendering.
func (f *LabelFont) Face() *text.GoTextFace {
	return f.face
}

var (
	labelFontOnce sync.Once
	labelFont     *LabelFont
)

// defaultLabelFont lazily loads the bundled Go Regular face. Label
// rasterization only happens on the draw path, so headless tests never
// reach this.
func defaultLabelFont() *LabelFont {
	labelFontOnce.Do(func() {
		f, err := LoadLabelFont(goregular.TTF, labelFontSize)
		if err != nil {
			// The bundled face always parses; if it does not,
			// rendering labels is impossible anyway.
			panic(err)
		}
		labelFont = f
	})
	return labelFont
}

// labelImage returns the node's cached term-label texture, rasterizing it
// on first use or after SetTerm. Returns nil for an empty term.
func (n *Node) labelImage() *ebiten.Image {
	if !n.labelDirty {
		return n.label
	}
	n.labelDirty = false

	if n.label != nil {
		n.label.Deallocate()
		n.label = nil
	}
	if n.Term == "" {
		return nil
	}

	f := defaultLabelFont()
	w, h := f.MeasureString(n.Term)
	iw := int(math.Ceil(w))
	ih := int(math.Ceil(h))
	if iw <= 0 || ih <= 0 {
		return nil
	}

	img := ebiten.NewImage(iw, ih)
	text.Draw(img, n.Term, f.Face(), &text.DrawOptions{})

	n.label = img
	return n.label
}
