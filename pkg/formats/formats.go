// Package formats provides readers and writers for terrain grid files and mesh exports.
package formats

// Note: TGRD (binary terrain grid) is implemented in tgrd.go
// Note: the plain-text grid format is implemented in text.go
// Note: Wavefront OBJ export is implemented in obj.go
