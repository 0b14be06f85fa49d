// Package export writes attractors as SVG documents and JSON metadata
// records that can be rendered again later.
package export
