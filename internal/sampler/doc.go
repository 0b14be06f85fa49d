// Package sampler draws random search candidates: an initial point in
// [-0.5, 0.5]², twelve coefficients in [-2, 2] and a small shadow
// perturbation scaled down by a sensitivity divisor.
//
// The random source is an explicit, seedable dependency so a fixed seed
// reproduces the same sequence of candidates.
package sampler
