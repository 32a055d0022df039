// worldgen generates worlds without a window and reports on them.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wildmere/internal/game/entity"
	"github.com/Faultbox/wildmere/internal/game/sim"
	"github.com/Faultbox/wildmere/internal/game/world"
	"github.com/Faultbox/wildmere/internal/logger"
	"github.com/Faultbox/wildmere/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "summary", "info":
		cmdSummary(args)
	case "check":
		cmdCheck(args)
	case "walk":
		cmdWalk(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`worldgen - headless world generator

Usage:
  worldgen <command> [options]

Commands:
  summary [-seed N] [-yaml FILE]     Print group, collider and footprint counts
  check [-seed N] [-count K]         Check invariants for K seeds starting at N
  walk [-seed N] [-seconds S]        Walk the player forward and report where it stops

Common options:
  -debug                             Log generator steps

Examples:
  worldgen summary -seed 42
  worldgen summary -seed 42 -yaml world.yaml
  worldgen check -seed 1 -count 50`)
}

type common struct {
	seed  *int64
	debug *bool
}

func newFlags(name string) (*flag.FlagSet, common) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs, common{
		seed:  fs.Int64("seed", 1, "World seed"),
		debug: fs.Bool("debug", false, "Enable debug logging"),
	}
}

func (c common) init() {
	level := "warn"
	if *c.debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}

func build(seed int64) *world.World {
	w, err := world.Build(world.DefaultParams(seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return w
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cmdSummary(args []string) {
	fs, c := newFlags("summary")
	out := fs.String("yaml", "", "Write the summary as YAML to this file (- for stdout)")
	fs.Parse(args)
	c.init()
	defer logger.Sync()

	s := world.Summarize(build(*c.seed))

	if *out != "" {
		data, err := yaml.Marshal(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *out == "-" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(*out, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *out)
	}

	fmt.Printf("Seed:        %d\n", s.Seed)
	fmt.Printf("Half extent: %.0f\n", s.HalfExtent)
	fmt.Printf("Ground:      %d cells, %d on paths\n", s.Ground.Cells, s.Ground.PathCells)
	fmt.Println()

	total := 0
	fmt.Println("Vertices:")
	for _, g := range world.DrawGroups() {
		n := s.Vertices[g.String()]
		total += n
		fmt.Printf("  %-12s %8d  (%d triangles)\n", g, n, n/3)
	}
	fmt.Printf("  %-12s %8d\n", "total", total)
	fmt.Println()

	fmt.Println("Colliders:")
	for _, k := range sortedKeys(s.Colliders) {
		fmt.Printf("  %-12s %8d\n", k, s.Colliders[k])
	}
	fmt.Printf("Footprints:  %d\n", s.Footprints)
	fmt.Println()

	fmt.Println("Steps:")
	for _, st := range s.Steps {
		fmt.Printf("  %-12s %8d placed\n", st.Name, st.Placed)
	}
	fmt.Printf("Chests:      %d\n", len(s.Chests))

	if len(s.Violations) > 0 {
		fmt.Printf("\n%d violations:\n", len(s.Violations))
		for _, v := range s.Violations {
			fmt.Printf("  %s\n", v)
		}
		os.Exit(2)
	}
}

func cmdCheck(args []string) {
	fs, c := newFlags("check")
	count := fs.Int("count", 10, "Number of consecutive seeds to check")
	fs.Parse(args)
	c.init()
	defer logger.Sync()

	failed := 0
	for i := 0; i < *count; i++ {
		seed := *c.seed + int64(i)
		violations := world.Check(build(seed))
		if len(violations) == 0 {
			fmt.Printf("seed %-8d ok\n", seed)
			continue
		}
		failed++
		parts := make([]string, len(violations))
		for j, v := range violations {
			parts[j] = v.String()
		}
		fmt.Printf("seed %-8d FAIL\n  %s\n", seed, strings.Join(parts, "\n  "))
	}

	fmt.Printf("\n%d of %d seeds passed\n", *count-failed, *count)
	if failed > 0 {
		os.Exit(2)
	}
}

func cmdWalk(args []string) {
	fs, c := newFlags("walk")
	seconds := fs.Float64("seconds", 10, "Simulated seconds of walking")
	yaw := fs.Float64("yaw", 0, "Camera yaw in radians")
	run := fs.Bool("run", false, "Run instead of walk")
	fs.Parse(args)
	c.init()
	defer logger.Sync()

	s := sim.New(build(*c.seed), sim.Options{})
	s.Camera.Yaw = float32(*yaw)

	const dt = float32(1.0 / 60)
	frames := int(*seconds * 60)
	collided := 0
	looted := 0
	for i := 0; i < frames; i++ {
		before := s.Player.Position
		events := s.Tick(entity.Intent{Move: math.Vec2{Y: 1}, Run: *run, Interact: true}, dt)
		for _, e := range events {
			if e.Kind == sim.LootTaken {
				looted++
			}
		}
		if moved := s.Player.Position.Sub(before).Length(); moved < s.Player.Speed()*dt*0.5 {
			collided++
		}
	}

	snap := s.Snapshot()
	logger.Info("walk finished", zap.Int("frames", frames), zap.Int("blocked_frames", collided))
	fmt.Printf("Frames:   %d\n", frames)
	fmt.Printf("Position: (%.2f, %.2f, %.2f)\n", snap.Position.X, snap.Position.Y, snap.Position.Z)
	fmt.Printf("Blocked:  %d frames\n", collided)
	fmt.Printf("Looted:   %d chests, %d gold, level %d\n", looted, snap.Gold, snap.Level)
}
