// Package meter estimates scene brightness from an image: it averages the
// luma of a thumbnail and maps it onto the photographic EV scale.
package meter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/model"
	"golang.org/x/image/draw"

	// Decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultThumbnailSize bounds both thumbnail dimensions.
const DefaultThumbnailSize = 200

// Reading is the brightness of one image.
type Reading struct {
	SuggestedCondition string  `json:"suggested_condition"`
	Format             string  `json:"-"`
	AvgLuminance       float64 `json:"avg_luminance"`
	EV                 float64 `json:"ev"`
	PixelCount         int     `json:"pixel_count"`
}

// MeterReading converts r to its stored form.
func (r Reading) MeterReading(source string) model.MeterReading {
	return model.MeterReading{
		Source:             source,
		AvgLuminance:       r.AvgLuminance,
		EV:                 r.EV,
		PixelCount:         r.PixelCount,
		SuggestedCondition: r.SuggestedCondition,
	}
}

// Analyzer measures images at a fixed thumbnail size.
type Analyzer struct {
	ThumbnailSize int
}

// NewAnalyzer returns an analyzer for the given thumbnail bound. Non-positive
// sizes use DefaultThumbnailSize.
func NewAnalyzer(thumbnailSize int) *Analyzer {
	if thumbnailSize <= 0 {
		thumbnailSize = DefaultThumbnailSize
	}
	return &Analyzer{ThumbnailSize: thumbnailSize}
}

// Analyze decodes an image from r and measures it with the default analyzer.
func Analyze(r io.Reader) (Reading, error) {
	return NewAnalyzer(DefaultThumbnailSize).Analyze(r)
}

// Analyze decodes an image from r and measures it.
func (a *Analyzer) Analyze(r io.Reader) (Reading, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Reading{}, fmt.Errorf("%w: %v", common.ErrUnsupportedImage, err)
		}
		return Reading{}, fmt.Errorf("%w: failed to decode: %v", common.ErrUnsupportedImage, err)
	}

	reading, err := a.AnalyzeImage(img)
	if err != nil {
		return Reading{}, err
	}
	reading.Format = format
	return reading, nil
}

// AnalyzeImage measures an already decoded image.
func (a *Analyzer) AnalyzeImage(img image.Image) (Reading, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return Reading{}, common.ErrEmptyImage
	}

	thumb := a.thumbnail(img)
	tb := thumb.Bounds()

	var total float64
	for y := tb.Min.Y; y < tb.Max.Y; y++ {
		for x := tb.Min.X; x < tb.Max.X; x++ {
			total += Luma(thumb.At(x, y))
		}
	}

	count := tb.Dx() * tb.Dy()
	avg := total / float64(count)
	ev := LuminanceToEV(avg)

	return Reading{
		AvgLuminance:       round2(avg),
		EV:                 round2(ev),
		PixelCount:         count,
		SuggestedCondition: SuggestCondition(ev).Name,
	}, nil
}

// thumbnail shrinks img to fit within ThumbnailSize on both sides, keeping its
// aspect ratio. Images that already fit are returned as they are.
func (a *Analyzer) thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := ThumbnailDimensions(b.Dx(), b.Dy(), a.ThumbnailSize)
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ThumbnailDimensions returns the size of a w x h image shrunk to fit within a
// limit x limit box. Images are never enlarged and no side drops below one pixel.
func ThumbnailDimensions(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	scale := math.Min(float64(limit)/float64(w), float64(limit)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	return min(nw, limit), min(nh, limit)
}

// Luma returns the Rec. 601 luma of c on a 0-255 scale. Alpha is ignored.
func Luma(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return 0.299*float64(n.R) + 0.587*float64(n.G) + 0.114*float64(n.B)
}

// LuminanceToEV maps an average 8-bit luma onto an EV between 2 and 17.
func LuminanceToEV(l float64) float64 {
	switch {
	case l < 30:
		return 2 + (l/30)*4
	case l < 60:
		return 6 + ((l-30)/30)*3
	case l < 120:
		return 9 + ((l-60)/60)*3
	case l < 180:
		return 12 + ((l-120)/60)*2
	default:
		return 14 + ((l-180)/75)*3
	}
}

// NominalEV is the EV at ISO 100 of a condition's reference aperture held for
// 1/100 s, the shutter speed the sunny-16 table assumes.
func NominalEV(c model.LightingCondition) float64 {
	return math.Log2(c.FStop * c.FStop * 100)
}

// SuggestCondition returns the lighting condition whose nominal EV is closest
// to ev.
func SuggestCondition(ev float64) model.LightingCondition {
	best := model.LightingConditions[0]
	bestDiff := math.Inf(1)
	for _, c := range model.LightingConditions {
		if d := math.Abs(NominalEV(c) - ev); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
