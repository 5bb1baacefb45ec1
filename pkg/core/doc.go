// Package core defines the shared language of the leapmeta system.
//
// This package contains:
//   - Identity keys (Identifier, LogicalType)
//   - The closed feature variant (FeatureType, FeatureSet) and pass phases
//   - Validation findings (Severity, ValidationFailure, Report)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
