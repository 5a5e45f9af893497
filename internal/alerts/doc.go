// Package alerts owns Layer 5 (Alerts) of the guidance data model.
//
// Responsibilities: the Alert catalogue with message identifiers and
// companion vibration patterns, and the Indication Resolver that folds a
// step result into the stabilized zones, debounces step alerts, and applies
// the fixed-precedence decision table.
// Key types: Alert, VibrationPattern, Resolver, ResolverConfig, Counters.
//
// Dependency rule: L5 may depend on L1-L4, but never on the engine.
package alerts
