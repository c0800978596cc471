package config

import "image/color"

// BakeConfig contains level baking configuration
type BakeConfig struct {
	// TMX layout
	SolidLayer    string // Tile layer whose tiles are solid
	WalkableLayer string // Optional tile layer whose tiles are walkable
	SlopeProperty string // Tileset tile property marking diagonal tiles
	SpawnGroup    string // Object group holding player spawns

	// Spawn grounding in -verify
	SpawnHeight float64 // Player collision height
	SpawnOffset float64 // Pixels the player may sink into a slope

	// ImplicitWalkable treats every non-solid tile as walkable when the
	// level has no walkable layer
	ImplicitWalkable bool

	ColliderMode string // "convex" or "outline"
	NoHoles      bool   // Fail on islands with holes instead of extracting them
}

// NavConfig contains pathfinding grid configuration
type NavConfig struct {
	CellSize      float64 // World pixels per nav cell, 0 = tile width
	AllowDiagonal bool    // 8-directional movement
	DiagonalCost  float64
	StraightCost  float64
	SnapRadius    int // Cells searched for a walkable start or goal
}

// PreviewConfig contains PNG preview configuration
type PreviewConfig struct {
	Scale           float64 // Output pixels per world pixel
	BackgroundColor color.RGBA
	ColliderColor   color.RGBA
	NavmeshColor    color.RGBA
	OutlineColor    color.RGBA
	RouteColor      color.RGBA
	OutlineWidth    float64 // Output pixels
}

// StoreConfig contains baked output persistence configuration
type StoreConfig struct {
	AppName string // gdata application name
	Prefix  string // Item key prefix
}

// Global configuration instances
var Bake BakeConfig
var Nav NavConfig
var Preview PreviewConfig
var Store StoreConfig

// Shared RGBA color constants
var (
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Slate     = color.RGBA{R: 70, G: 80, B: 95, A: 255}
	LightBlue = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Orange    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
)

func init() {
	// Bake Config
	Bake = BakeConfig{
		SolidLayer:       "wg-tiles",
		WalkableLayer:    "nav",
		SlopeProperty:    "slope",
		SpawnGroup:       "PlayerSpawn",
		SpawnHeight:      40.0,
		SpawnOffset:      0,
		ImplicitWalkable: true,
		ColliderMode:     "convex",
		NoHoles:          false,
	}

	// Nav Config
	Nav = NavConfig{
		CellSize:      0,
		AllowDiagonal: true,
		StraightCost:  1.0,
		DiagonalCost:  1.414,
		SnapRadius:    10,
	}

	// Preview Config
	Preview = PreviewConfig{
		Scale:           1.0,
		BackgroundColor: Black,
		ColliderColor:   Slate,
		NavmeshColor:    LightBlue,
		OutlineColor:    White,
		RouteColor:      Orange,
		OutlineWidth:    1.0,
	}

	// Store Config
	Store = StoreConfig{
		AppName: "tilemesh",
		Prefix:  "bake_",
	}
}
