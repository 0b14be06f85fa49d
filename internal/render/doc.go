// Package render turns trajectories into 8-bit grayscale rasters.
//
// [Rasterize] marks every visited pixel with a single intensity, the way
// the search previews its attractors. [Accumulate] adds a fixed increment
// per visit for long density renders of known maps. Both share
// [Projector], which translates each axis to start at zero and scales it
// to the image resolution.
package render
