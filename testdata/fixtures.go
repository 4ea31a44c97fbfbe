// Package testdata builds frames and asset directories for tests.
package testdata

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"gocv.io/x/gocv"
)

// Frame returns a 640x480 camera-sized frame with a bright square whose
// position depends on n, so consecutive frames differ.
func Frame(n int) gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(20, 20, 20, 0), 480, 640, gocv.MatTypeCV8UC3)
	x := 100 + (n*37)%400
	gocv.Rectangle(&mat, image.Rect(x, 180, x+120, 300), color.RGBA{R: 220, G: 190, B: 170}, -1)
	return mat
}

// Sequence returns n frames from Frame. The caller closes them.
func Sequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		f := Frame(i)
		frames[i] = &f
	}
	return frames
}

// CloseAll closes frames returned by Sequence.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		if f != nil {
			f.Close()
		}
	}
}

// WriteAssets writes BG.png and the three move icons into dir, the layout
// render.NewPresenter loads.
func WriteAssets(dir string) error {
	bg := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(60, 40, 30, 0), 720, 1280, gocv.MatTypeCV8UC3)
	defer bg.Close()
	if !gocv.IMWrite(filepath.Join(dir, "BG.png"), bg) {
		return fmt.Errorf("write BG.png in %s", dir)
	}

	colors := []gocv.Scalar{
		gocv.NewScalar(80, 80, 200, 255),
		gocv.NewScalar(80, 200, 80, 255),
		gocv.NewScalar(200, 80, 80, 255),
	}
	for i, c := range colors {
		icon := gocv.NewMatWithSizeFromScalar(c, 200, 200, gocv.MatTypeCV8UC4)
		ok := gocv.IMWrite(filepath.Join(dir, fmt.Sprintf("%d.png", i+1)), icon)
		icon.Close()
		if !ok {
			return fmt.Errorf("write %d.png in %s", i+1, dir)
		}
	}
	return nil
}
