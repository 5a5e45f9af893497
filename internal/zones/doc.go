// Package zones owns Layer 2 (Zones) of the guidance data model.
//
// Responsibilities: the Zone vocabulary, zone sets and presence maps, and
// the Zone Classifier that turns a semantic buffer plus a depth buffer into
// the coarse zones each nearby obstacle category occupies.
// Key types: Zone, Set, Presence, FrameZoneMap, Classifier.
//
// Dependency rule: L2 may depend on L1 (scene), but never on L3+.
package zones
