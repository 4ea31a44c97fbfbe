package capture

import (
	"image"

	"gocv.io/x/gocv"
)

// Size of the camera view drawn into the game board.
const (
	ViewWidth  = 400
	ViewHeight = 420
)

// Prepare scales src to the view height and crops the centre columns to the
// view width, writing the ViewWidth x ViewHeight result into dst.
// A 640x480 frame is scaled by 0.875 and columns 80..480 are kept.
// When mirror is set the view is flipped horizontally.
func Prepare(src gocv.Mat, dst *gocv.Mat, mirror bool) error {
	if src.Empty() {
		return ErrEmptyFrame
	}

	scale := float64(ViewHeight) / float64(src.Rows())
	scaledWidth := int(float64(src.Cols())*scale + 0.5)

	scaled := gocv.NewMat()
	defer scaled.Close()

	if scaledWidth < ViewWidth {
		gocv.Resize(src, &scaled, image.Pt(ViewWidth, ViewHeight), 0, 0, gocv.InterpolationLinear)
	} else {
		gocv.Resize(src, &scaled, image.Pt(scaledWidth, ViewHeight), 0, 0, gocv.InterpolationLinear)
	}

	left := (scaled.Cols() - ViewWidth) / 2
	view := scaled.Region(image.Rect(left, 0, left+ViewWidth, ViewHeight))
	defer view.Close()

	if mirror {
		gocv.Flip(view, dst, 1)
		return nil
	}
	view.CopyTo(dst)
	return nil
}
