// Package scene owns Layer 1 (Scene inputs) of the guidance data model.
//
// Responsibilities: semantic categories, semantic and depth buffers as
// delivered by the sensing platform, device poses, the calibrated probe
// grid and the world points sampled through it.
// Key types: Category, SemanticImage, DepthImage, Pose, ProbeGrid, WorldPoint.
//
// Dependency rule: L1 depends on nothing else in this module.
// Values here are copied out of frame-scoped platform buffers; nothing in
// this package retains a reference to a buffer after the frame ends.
package scene
