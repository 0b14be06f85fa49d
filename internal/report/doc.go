// Package report hands accepted attractors to their consumers: [Console]
// prints coefficients and initial points for a human to read back, and
// [Images] writes raster or SVG renders next to them, optionally with a
// JSON record that `attractor render --from` can replay.
package report
