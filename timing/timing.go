// Package timing converts between seconds and frame counts on a fixed
// fps timeline. A frame is the atomic unit of the video; 1/fps seconds.
package timing

import "math"

// SecondsToFrames rounds a duration in seconds to the nearest frame count
func SecondsToFrames(seconds float64, fps int) int {
	return int(math.Round(seconds * float64(fps)))
}

// FramesToSeconds converts a frame count back to seconds
func FramesToSeconds(frames int, fps int) float64 {
	return float64(frames) / float64(fps)
}
