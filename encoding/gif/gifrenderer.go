package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/boltz"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 72.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Epoch 100000, Error: 0.0000`
	captionLines    = 2
	tileGap         = 2
	defaultScale    = 4
	epochDelay      = 50 // in 100ths of a second
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var globPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}()

// Encoder renders the weights of the model at the end of every epoch as a grid of tiles, one tile per hidden unit,
// and collects the frames into an animated gif. It implements boltz.OutputEncoder.
type Encoder struct {
	// TileH, TileW is the shape each hidden unit's incoming weights are drawn as.
	// If TileH*TileW is not the number of visible units, a 1×Visible strip is drawn instead.
	TileH, TileW int
	Scale        int // pixels per weight

	font.Drawer
	io.Writer
	out  *gif.GIF
	face font.Face

	h, w        int // image size
	gridCols    int
	tileH       int
	tileW       int
	padH, padW  int
	initialized bool
}

// NewGifEncoder creates an encoder that writes to w when flushed.
func NewGifEncoder(w io.Writer, tileH, tileW int) *Encoder {
	return &Encoder{
		TileH:  tileH,
		TileW:  tileW,
		Scale:  defaultScale,
		Writer: w,
		padH:   10,
		padW:   10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: 0},
	}
}

func (enc *Encoder) init(visible, hidden int) {
	enc.face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	enc.Drawer.Face = enc.face

	enc.tileH, enc.tileW = enc.TileH, enc.TileW
	if enc.tileH*enc.tileW != visible || enc.tileH <= 0 {
		enc.tileH, enc.tileW = 1, visible
	}
	if enc.Scale <= 0 {
		enc.Scale = defaultScale
	}
	enc.gridCols = int(math.Ceil(math.Sqrt(float64(hidden))))
	gridRows := (hidden + enc.gridCols - 1) / enc.gridCols

	gridW := enc.gridCols*(enc.tileW*enc.Scale+tileGap) - tileGap
	gridH := gridRows*(enc.tileH*enc.Scale+tileGap) - tileGap
	textW := font.MeasureString(enc.face, dummyLongString).Ceil()
	dy := lineHeight()

	enc.w = maxInt(gridW, textW) + 2*enc.padW
	enc.h = gridH + captionLines*dy + 2*enc.padH + dy/2
	enc.initialized = true
}

// Encode draws a frame at the end of every epoch. Other states are ignored.
func (enc *Encoder) Encode(ms boltz.MetaState) error {
	if !ms.EpochDone() {
		return nil
	}
	m := ms.Model()
	w, _, _ := m.Weights()
	weights := w.Data().([]float32)
	if !enc.initialized {
		enc.init(m.Visible, m.Hidden)
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.w, enc.h), globPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	column := make([]float32, m.Visible)
	for j := 0; j < m.Hidden; j++ {
		for i := range column {
			column[i] = weights[i*m.Hidden+j]
		}
		x0 := enc.padW + (j%enc.gridCols)*(enc.tileW*enc.Scale+tileGap)
		y0 := enc.padH + (j/enc.gridCols)*(enc.tileH*enc.Scale+tileGap)
		enc.drawTile(im, column, x0, y0)
	}

	dy := lineHeight()
	y := enc.h - enc.padH - (captionLines-1)*dy
	enc.Dst = im
	enc.Dot = fixed.P(enc.padW, y-dy)
	enc.DrawString(ms.Name())
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(fmt.Sprintf("Epoch %d, Error: %.4f", ms.Epoch(), ms.EpochError()))

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, epochDelay)
	return nil
}

// drawTile draws the weights as a min-max scaled grayscale tile with its top left corner at (x0, y0).
func (enc *Encoder) drawTile(im *image.Paletted, weights []float32, x0, y0 int) {
	lo, hi := math32.Inf(1), math32.Inf(-1)
	for _, v := range weights {
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	span := hi - lo
	for i, v := range weights {
		var shade uint8 = 127
		if span > 0 {
			shade = uint8(255 * (v - lo) / span)
		}
		r, c := i/enc.tileW, i%enc.tileW
		px := image.Rect(x0+c*enc.Scale, y0+r*enc.Scale, x0+(c+1)*enc.Scale, y0+(r+1)*enc.Scale)
		draw.Draw(im, px, &image.Uniform{color.Gray{shade}}, image.Point{}, draw.Src)
	}
}

// Frames returns the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	if len(enc.out.Image) == 0 {
		return nil
	}
	return gif.EncodeAll(enc.Writer, enc.out)
}

func lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
