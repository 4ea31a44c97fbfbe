package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It is also the fallback when no MediaPipe service is installed, in which
// case it never reports a hand and moves come from the keyboard.
type MockDetector struct {
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// foldThumb tucks the thumb across the palm.
func foldThumb(l *HandLandmarks) {
	l.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	l.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70, Z: -0.01}
	l.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.66, Z: -0.02}
	l.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.70, Z: -0.03}
}

// curl bends one long finger back toward the palm. x is the knuckle column.
func curl(l *HandLandmarks, mcp int, x, y float64) {
	l.Points[mcp] = Point3D{X: x, Y: y, Z: -0.02}
	l.Points[mcp+1] = Point3D{X: x, Y: y - 0.02, Z: -0.05}
	l.Points[mcp+2] = Point3D{X: x - 0.03, Y: y, Z: -0.04}
	l.Points[mcp+3] = Point3D{X: x - 0.05, Y: y + 0.02, Z: -0.02}
}

// extend straightens one long finger upwards with the given length.
func extend(l *HandLandmarks, mcp int, x, y, length float64) {
	step := length / 3
	l.Points[mcp] = Point3D{X: x, Y: y}
	l.Points[mcp+1] = Point3D{X: x, Y: y - step}
	l.Points[mcp+2] = Point3D{X: x, Y: y - 2*step}
	l.Points[mcp+3] = Point3D{X: x, Y: y - length}
}

func baseHand() HandLandmarks {
	l := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	l.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}
	return l
}

// FistLandmarks returns a closed fist: every finger down, reads as rock.
func FistLandmarks() HandLandmarks {
	l := baseHand()
	foldThumb(&l)
	curl(&l, IndexMCP, 0.55, 0.70)
	curl(&l, MiddleMCP, 0.50, 0.68)
	curl(&l, RingMCP, 0.45, 0.70)
	curl(&l, PinkyMCP, 0.40, 0.72)
	return l
}

// OpenPalmLandmarks returns an open palm: every finger up, reads as paper.
func OpenPalmLandmarks() HandLandmarks {
	l := baseHand()

	// Thumb extended to the side
	l.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	l.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	l.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	l.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	extend(&l, IndexMCP, 0.55, 0.68, 0.33)
	extend(&l, MiddleMCP, 0.50, 0.66, 0.38)
	extend(&l, RingMCP, 0.45, 0.68, 0.33)
	extend(&l, PinkyMCP, 0.40, 0.70, 0.28)
	return l
}

// VictoryLandmarks returns index and middle up, reads as scissors.
func VictoryLandmarks() HandLandmarks {
	l := baseHand()
	foldThumb(&l)
	extend(&l, IndexMCP, 0.55, 0.68, 0.33)
	extend(&l, MiddleMCP, 0.50, 0.66, 0.38)
	curl(&l, RingMCP, 0.45, 0.70)
	curl(&l, PinkyMCP, 0.40, 0.72)
	return l
}

// ThumbsUpLandmarks returns a thumbs up: only the thumb raised, not a move.
func ThumbsUpLandmarks() HandLandmarks {
	l := baseHand()
	l.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	l.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	l.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	l.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}
	curl(&l, IndexMCP, 0.55, 0.70)
	curl(&l, MiddleMCP, 0.50, 0.68)
	curl(&l, RingMCP, 0.45, 0.70)
	curl(&l, PinkyMCP, 0.40, 0.72)
	return l
}

// MiddleFingerLandmarks returns only the middle finger raised.
func MiddleFingerLandmarks() HandLandmarks {
	l := baseHand()
	foldThumb(&l)
	curl(&l, IndexMCP, 0.55, 0.70)
	extend(&l, MiddleMCP, 0.50, 0.66, 0.38)
	curl(&l, RingMCP, 0.45, 0.70)
	curl(&l, PinkyMCP, 0.40, 0.72)
	return l
}
