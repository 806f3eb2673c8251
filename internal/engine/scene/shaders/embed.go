// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader transforms floor and wall vertices.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader flat-shades terrain faces with a directional light.
//
//go:embed terrain.frag
var TerrainFragmentShader string
