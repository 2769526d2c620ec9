// Package biometric implements the facial feature-vector comparison step.
//
// # Components
//
//   - [Vector] — fixed-length float32 embedding with byte-buffer codec.
//   - [Comparator] — pure distance-threshold match decision.
//
// # Architecture boundaries
//
// This package owns vector shape validation and the Euclidean distance
// metric. It does NOT capture samples or extract features — vectors arrive
// fully formed from an external extractor.
//
// # What this package must NOT do
//
//   - Hold state or perform I/O. Compare is deterministic and side-effect
//     free.
//   - Interpret vector contents beyond length and distance.
package biometric
