package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/tilemesh/bake"
	cfg "github.com/automoto/tilemesh/config"
	"github.com/automoto/tilemesh/fonts"
	"github.com/automoto/tilemesh/grid"
	"github.com/automoto/tilemesh/loops"
	"github.com/automoto/tilemesh/shared/leveldata"
	"github.com/automoto/tilemesh/store"
)

func main() {
	levelPath := flag.String("level", "", "Bake a single TMX level")
	levelsDir := flag.String("levels", "", "Bake every TMX level in a directory")
	gridPath := flag.String("grid", "", "Bake a plain-text grid ('#' solid, '/' slope, '.' walkable)")
	tileSize := flag.Int("tile", 16, "Tile size in pixels for -grid input")
	outDir := flag.String("out", ".", "Directory for baked .txt (and .png) output")
	writePNG := flag.Bool("png", false, "Also write a PNG preview per level")
	save := flag.Bool("save", false, "Store baked output in the user data directory")
	mode := flag.String("mode", cfg.Bake.ColliderMode, "Collider mode: convex or outline")
	noHoles := flag.Bool("noholes", cfg.Bake.NoHoles, "Fail on islands with holes")
	route := flag.String("route", "", "Find a route between two world points, \"x1,y1:x2,y2\"")
	verify := flag.Bool("verify", false, "Check colliders against the tile grid")
	flag.Parse()

	colliderMode, err := bake.ParseColliderMode(*mode)
	if err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}
	cfg.Bake.ColliderMode = string(colliderMode)
	cfg.Bake.NoHoles = *noHoles

	opts := runOptions{
		outDir:    *outDir,
		writePNG:  *writePNG,
		verify:    *verify,
		colliders: colliderMode,
		loops:     loops.Holes,
	}
	if *noHoles {
		opts.loops = loops.NoHoles
	}
	if *route != "" {
		if opts.route, err = parseRoute(*route); err != nil {
			log.Fatalf("Invalid -route: %v", err)
		}
	}

	jobs, err := collectJobs(*levelPath, *levelsDir, *gridPath, *tileSize)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	if len(jobs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if opts.writePNG {
		if err := fonts.LoadDefaults(); err != nil {
			log.Printf("Warning: Could not load label font: %v", err)
		}
	}
	if *save {
		st, err := store.Open()
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		opts.store = st
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	failed := 0
	for _, j := range jobs {
		if err := run(j, opts); err != nil {
			log.Printf("Level %s failed: %v", j.name, err)
			failed++
		}
	}
	if failed > 0 {
		log.Fatalf("%d of %d levels failed", failed, len(jobs))
	}
}

// collectJobs loads every level named by the input flags.
func collectJobs(levelPath, levelsDir, gridPath string, tileSize int) ([]job, error) {
	var jobs []job

	if levelPath != "" {
		level, err := leveldata.LoadLevel(os.DirFS(filepath.Dir(levelPath)), filepath.Base(levelPath))
		if err != nil {
			return nil, err
		}
		j, err := levelJob(level)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	if levelsDir != "" {
		levels, names, err := leveldata.LoadAllLevels(os.DirFS(filepath.Dir(levelsDir)), filepath.Base(levelsDir))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			j, err := levelJob(levels[name])
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, j)
		}
	}

	if gridPath != "" {
		j, err := gridJob(gridPath, tileSize)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

func levelJob(level *leveldata.Level) (job, error) {
	g, err := level.Grid()
	if err != nil {
		return job{}, err
	}
	return job{
		name:   level.Name,
		grid:   g,
		tileW:  level.TileWidth,
		tileH:  level.TileHeight,
		mapW:   level.MapWidth(),
		mapH:   level.MapHeight(),
		spawns: level.Spawns,
	}, nil
}

func gridJob(path string, tileSize int) (job, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return job{}, err
	}
	layout, err := grid.ParseLayout(string(text))
	if err != nil {
		return job{}, err
	}
	layout.ImplicitWalkable = len(layout.Walkable) == 0 && cfg.Bake.ImplicitWalkable
	g, err := grid.New(layout)
	if err != nil {
		return job{}, err
	}
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	return job{
		name:  name,
		grid:  g,
		tileW: tileSize,
		tileH: tileSize,
		mapW:  g.Width() * tileSize,
		mapH:  g.Height() * tileSize,
	}, nil
}
