package vision

import (
	"github.com/lkarlslund/stormbot/internal/gamestate"
	"gocv.io/x/gocv"
)

// MatPixels reads probe pixels out of a BGR frame.
type MatPixels struct {
	Mat gocv.Mat
}

// BGR returns the pixel at x,y, or black outside the frame.
func (p MatPixels) BGR(x, y int) gamestate.BGR {
	if x < 0 || y < 0 || x >= p.Mat.Cols() || y >= p.Mat.Rows() || p.Mat.Channels() < 3 {
		return gamestate.BGR{}
	}
	v := p.Mat.GetVecbAt(y, x)
	return gamestate.BGR{v[0], v[1], v[2]}
}
