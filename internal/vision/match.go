package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// Gray returns a single channel copy of src. The caller closes it.
func Gray(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	if src.Channels() == 1 {
		src.CopyTo(&gray)
		return gray
	}
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	return gray
}

// MatchTemplate correlates tmpl over gray and returns the top-left of every
// placement scoring at least threshold, in row-major order. Neighbouring
// placements of one object all come back; see Suppress.
func MatchTemplate(gray, tmpl gocv.Mat, threshold float32) []image.Point {
	if tmpl.Empty() || tmpl.Rows() > gray.Rows() || tmpl.Cols() > gray.Cols() {
		return nil
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(gray, tmpl, &result, gocv.TmCcoeffNormed, mask)

	cols := result.Cols()
	var hits []image.Point
	scores, err := result.DataPtrFloat32()
	if err != nil {
		// not continuous, read it cell by cell
		for y := 0; y < result.Rows(); y++ {
			for x := 0; x < cols; x++ {
				if result.GetFloatAt(y, x) >= threshold {
					hits = append(hits, image.Pt(x, y))
				}
			}
		}
		return hits
	}
	for i, score := range scores {
		if score >= threshold {
			hits = append(hits, image.Pt(i%cols, i/cols))
		}
	}
	return hits
}
