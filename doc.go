// Package azint implements the pixel-splitting rebinning kernel at the
// core of azimuthal integration for X-ray powder diffraction: turning a
// detector image plus a per-pixel quadrilateral footprint in (pos0, pos1)
// angular space into a 1D or 2D intensity histogram, with each pixel's
// intensity distributed across output bins in proportion to the geometric
// overlap area.
//
// The package does not interpret physical units, compute pixel corner
// positions, read image files, or talk to a GPU; it consumes corner
// arrays produced by an external geometry layer and returns plain
// histogram buffers. See [Integrate1D] and [Integrate2D].
package azint
