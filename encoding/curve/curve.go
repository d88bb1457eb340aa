// Package curve plots the reconstruction error of a training run.
package curve

import (
	"image/color"

	"github.com/gorgonia/boltz"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	batchColour = color.RGBA{R: 0x80, G: 0x80, B: 0xff, A: 255}
	epochColour = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 255}
)

// Encoder collects the errors reported during training and plots them when flushed.
// It implements boltz.OutputEncoder.
type Encoder struct {
	Filename      string
	Title         string
	Width, Height vg.Length

	batches plotter.XYs
	epochs  plotter.XYs
}

// New creates an Encoder that saves its plot to filename. The format is inferred from the extension.
func New(filename, title string) *Encoder {
	return &Encoder{
		Filename: filename,
		Title:    title,
		Width:    8 * vg.Inch,
		Height:   4 * vg.Inch,
	}
}

// Encode records the error of the current batch, or of the current epoch at the end of an epoch.
// The x axis is the number of batches trained on.
func (enc *Encoder) Encode(ms boltz.MetaState) error {
	x := float64(ms.Epoch()*ms.Batches() + ms.Batch() + 1)
	if ms.EpochDone() {
		enc.epochs = append(enc.epochs, plotter.XY{X: x, Y: float64(ms.EpochError())})
		return nil
	}
	enc.batches = append(enc.batches, plotter.XY{X: x, Y: float64(ms.BatchError())})
	return nil
}

// Points returns the number of batch errors recorded.
func (enc *Encoder) Points() int { return len(enc.batches) }

// Flush saves the plot.
func (enc *Encoder) Flush() error {
	if len(enc.batches) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = enc.Title
	p.X.Label.Text = "batch"
	p.Y.Label.Text = "reconstruction error"
	p.Legend.Top = true

	batchLine, err := plotter.NewLine(enc.batches)
	if err != nil {
		return errors.WithStack(err)
	}
	batchLine.LineStyle.Color = batchColour
	p.Add(batchLine)
	p.Legend.Add("batch", batchLine)

	if len(enc.epochs) > 0 {
		epochLine, err := plotter.NewLine(enc.epochs)
		if err != nil {
			return errors.WithStack(err)
		}
		epochLine.LineStyle.Color = epochColour
		epochLine.LineStyle.Width = vg.Points(2)
		p.Add(epochLine)
		p.Legend.Add("epoch mean", epochLine)
	}

	return errors.WithStack(p.Save(enc.Width, enc.Height, enc.Filename))
}
