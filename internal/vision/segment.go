package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// SegmentOptions controls dark blob segmentation.
type SegmentOptions struct {
	// Low and High bound the luminance of soldier pixels.
	Low, High uint8

	// Kernel is the side of the square used to open the mask.
	Kernel int

	// Blobs smaller than MinSize on both axes are noise.
	MinSize int

	// Blobs wider than DeathMinWidth and shorter than DeathMaxHeight are
	// soldiers lying down in their death animation.
	DeathMinWidth  int
	DeathMaxHeight int
}

// DefaultSegmentOptions matches the near-black soldier sprites.
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		Low:            0,
		High:           8,
		Kernel:         3,
		MinSize:        10,
		DeathMinWidth:  10,
		DeathMaxHeight: 20,
	}
}

// Reject reports whether a blob of the given bounds is filtered out.
func (o SegmentOptions) Reject(r image.Rectangle) bool {
	w, h := r.Dx(), r.Dy()
	if w < o.MinSize && h < o.MinSize {
		return true
	}
	if w > o.DeathMinWidth && h < o.DeathMaxHeight {
		return true
	}
	return false
}

// Segment returns the bounds of dark blobs in region, relative to region.
func Segment(region gocv.Mat, o SegmentOptions) []image.Rectangle {
	gray := Gray(region)
	defer gray.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(gray, gocv.NewScalar(float64(o.Low), 0, 0, 0), gocv.NewScalar(float64(o.High), 0, 0, 0), &mask)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(o.Kernel, o.Kernel))
	defer kernel.Close()
	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var boxes []image.Rectangle
	for i := 0; i < contours.Size(); i++ {
		bb := gocv.BoundingRect(contours.At(i))
		if o.Reject(bb) {
			continue
		}
		boxes = append(boxes, bb)
	}
	return boxes
}
