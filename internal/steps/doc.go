// Package steps owns Layer 4 (Steps) of the guidance data model.
//
// Responsibilities: sampling world-space points under the calibrated probe
// grid, and the Step/Stair/Pit Detector that compares probe rows to find
// ground discontinuities, tracks staircase continuity across frames, and
// remembers detected steps until the user reaches them.
// Key types: Detector, DetectorConfig, State, Result, Kind, Sampler.
//
// Dependency rule: L4 may depend on L1 (scene), but never on L2+ or on L5.
package steps
