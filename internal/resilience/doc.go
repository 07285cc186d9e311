// Package resilience holds fault-isolation primitives for outbound calls.
//
// Subpackages:
//   - circuitbreaker: gobreaker wrapper used per transport strategy
package resilience
