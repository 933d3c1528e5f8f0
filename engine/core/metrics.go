package core

import "github.com/spaghettifunk/flycam/engine/containers"

const AVG_COUNT uint8 = 30

type MetricsState struct {
	// frame times in ms over the last AVG_COUNT frames
	MStimes            *containers.RingQueue[float64]
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64
}

var metricsState *MetricsState = nil

// MetricsInitialize resets the frame statistics.
func MetricsInitialize() error {
	metricsState = &MetricsState{
		MStimes: containers.NewRingQueue[float64](int(AVG_COUNT)),
	}
	return nil
}

func MetricsUpdate(frameElapsedTime float64) {
	if metricsState == nil {
		return
	}
	// Calculate frame ms average once the window is filled
	frameMS := frameElapsedTime * 1000.0
	metricsState.MStimes.Push(frameMS)
	if metricsState.MStimes.IsFull() {
		sum := 0.0
		for _, ms := range metricsState.MStimes.Values() {
			sum += ms
		}
		metricsState.MSavg = sum / float64(AVG_COUNT)
	}

	// Calculate Frames per second.
	metricsState.AccumulatedFrameMS += frameMS
	if metricsState.AccumulatedFrameMS > 1000 {
		metricsState.FPS = float64(metricsState.Frames)
		metricsState.AccumulatedFrameMS -= 1000
		metricsState.Frames = 0
	}

	// Count all Frames.
	metricsState.Frames++
}

func MetricsFPS() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.FPS
}

func MetricsFrameTime() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.MSavg
}

func MetricsFrame() (float64, float64) {
	return MetricsFPS(), MetricsFrameTime()
}
