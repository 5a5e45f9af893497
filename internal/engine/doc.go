// Package engine wires the guidance layers into a per-frame pipeline.
//
// Each call to ProcessFrame classifies the frame's obstacles (L2), pushes
// them through the temporal stabilizer (L3), runs the step detector over the
// sampled probe grid (L4) and resolves at most one alert (L5). The engine owns
// all cross-frame state. It performs no I/O and is not safe for concurrent
// use: confine it to the frame-processing goroutine or serialize calls.
package engine
