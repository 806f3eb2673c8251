package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// BuilderOptions converts the terrain settings into builder options.
func (t TerrainConfig) BuilderOptions(log *zap.Logger) []terrain.Option {
	opts := []terrain.Option{
		terrain.WithResolution(t.Resolution),
		terrain.WithWallHeight(t.WallHeight),
		terrain.WithUp(math.Vec3FromArray(t.Up)),
		terrain.WithOutlineSimplification(t.SimplifyOutlines),
	}
	if log != nil {
		opts = append(opts, terrain.WithLogger(log))
	}
	return opts
}
