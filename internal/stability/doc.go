// Package stability owns Layer 3 (Stability) of the guidance data model.
//
// Responsibilities: the fixed-capacity History of recent frame zone maps and
// the Temporal Stabilizer that suppresses single-frame segmentation noise by
// requiring a category to persist across several buffered frames.
// Key types: History, Stabilizer, StabilizerConfig.
//
// Dependency rule: L3 may depend on L1 (scene) and L2 (zones), but never on
// L4+.
package stability
