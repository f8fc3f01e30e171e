// gridgen generates a board offline and writes the snapshot either to a
// JSON file or straight into Redis, so a server can start from prebuilt
// terrain.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/gravitas-games/gridboard/grid"
	"github.com/gravitas-games/gridboard/internal/snapshot"
)

func main() {
	var (
		size      = flag.Int("size", 32, "side length of the generated board")
		cellSize  = flag.Float64("cell-size", 10, "cell half-width in world units")
		seed      = flag.Int64("seed", 0, "noise seed (0 = current time)")
		noiseAmp  = flag.Float64("noise-amplitude", 0, "height amplitude (0 = flat board)")
		noiseFreq = flag.Float64("noise-scale", 0.08, "noise frequency across the lattice")
		octaves   = flag.Int("noise-octaves", 3, "noise octave count")
		out       = flag.String("out", "", "write snapshot JSON to this file")
		redisAddr = flag.String("redis", "", "write snapshot to this Redis address instead of a file")
		prefix    = flag.String("redis-prefix", "board:snapshot:", "Redis key prefix")
		name      = flag.String("name", "main", "snapshot name")
	)
	flag.Parse()

	if *out == "" && *redisAddr == "" {
		log.Fatal("either -out or -redis is required")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	g := grid.New(*cellSize)
	gen := grid.GenConfig{Size: *size}
	if *noiseAmp > 0 {
		gen.Height = grid.NoiseHeights(*seed, *noiseFreq, *noiseAmp, *octaves)
	}
	g.Generate(gen)
	log.Printf("Generated %dx%d board: %d cells", *size, *size, g.Count())

	data := g.ToData()

	if *out != "" {
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode snapshot: %v", err)
		}
		if err := os.WriteFile(*out, raw, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *out, err)
		}
		log.Printf("Snapshot written to %s", *out)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	store := snapshot.New(rdb, *prefix)
	if err := store.Save(ctx, *name, data); err != nil {
		log.Fatalf("Failed to store snapshot: %v", err)
	}
	log.Printf("Snapshot %q stored in Redis at %s", *name, *redisAddr)
}
