// Package detector provides hand detection interfaces and the reduction of
// hand landmarks to finger states.
package detector

import (
	"math"

	"github.com/ayusman/rockpaper/internal/game"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized image coordinates, Y grows downwards.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// finger joints used to decide whether a long finger is raised.
var fingerJoints = [4]struct{ mcp, pip, tip int }{
	{IndexMCP, IndexPIP, IndexTip},
	{MiddleMCP, MiddlePIP, MiddleTip},
	{RingMCP, RingPIP, RingTip},
	{PinkyMCP, PinkyPIP, PinkyTip},
}

// distance2D calculates the Euclidean distance between two points in the image plane.
func distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// FingersUp reduces the landmarks to the up/down state of each finger.
//
// The thumb is up when its tip is farther from the wrist than its IP joint.
// Any other finger is up when its tip is above both its PIP and MCP joints.
func (h *HandLandmarks) FingersUp() game.FingerState {
	if h == nil {
		return game.FingerState{}
	}

	var up [5]bool
	wrist := h.Points[Wrist]
	up[0] = distance2D(h.Points[ThumbTip], wrist) > distance2D(h.Points[ThumbIP], wrist)

	for i, j := range fingerJoints {
		tip := h.Points[j.tip].Y
		up[i+1] = tip < h.Points[j.pip].Y && tip < h.Points[j.mcp].Y
	}

	return game.FingerStateFrom(up)
}

// Primary returns the first detected hand, or nil if there are none.
func Primary(hands []HandLandmarks) *HandLandmarks {
	if len(hands) == 0 {
		return nil
	}
	return &hands[0]
}
