package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/plus3/scenecore/manifest"
	"github.com/plus3/scenecore/scene"
)

var componentTypes = []string{"Transform", "MeshRenderer", "Light", "RigidBody", "Collider"}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	duration := flag.Duration("duration", 0, "Override the run duration.")
	entityCount := flag.Int("entities", 0, "Override the initial entity count.")
	seed := flag.Uint64("seed", 0, "Override the RNG seed.")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := DefaultConfig()
	if *configPath != "" {
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	if *entityCount > 0 {
		cfg.Entities = *entityCount
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}

	logger.Info("starting scene index stress test",
		zap.Duration("duration", cfg.Duration),
		zap.Int("entities", cfg.Entities),
		zap.Uint64("seed", cfg.Seed))

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	// 1. Setup world and manifest registry.
	reg := manifest.NewRegistry()
	manifest.RegisterBuiltins(reg)

	// Per-entity debug logs would swamp the run; keep the world at info.
	world := scene.NewWorld(logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel)))

	// 2. Populate with initial entities and a random forest.
	report := &Report{
		Duration: cfg.Duration,
		Entities: cfg.Entities,
		Seed:     cfg.Seed,
	}
	populate(world, rng, cfg.Entities, report)
	logger.Info("population complete",
		zap.Int("entities", world.EntityIndex().Count()),
		zap.Int("components", world.ComponentIndex().TotalComponentCount()))

	runtime.ReadMemStats(&report.MemStatsStart)

	// 3. Churn loop.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			tickStart := time.Now()
			tick(world, reg, rng, cfg.Churn, report)
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
			report.TotalTicks++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()

	// 4. Metadata round-trip check.
	meta := world.MetadataManager()
	report.ChecksumBefore = metadataChecksum(meta.Serialize())
	snapshot := meta.Serialize()
	meta.Clear()
	meta.Deserialize(snapshot)
	report.ChecksumAfter = metadataChecksum(meta.Serialize())

	runtime.ReadMemStats(&report.MemStatsEnd)
	logger.Info("simulation finished",
		zap.Int64("ticks", report.TotalTicks),
		zap.Bool("round_trip_ok", report.RoundTripOK()))

	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

func populate(world *scene.World, rng *rand.Rand, count int, report *Report) {
	created := make([]scene.Entity, 0, count)
	for i := 0; i < count; i++ {
		e := world.CreateEntity("")
		attachRandomComponents(world, rng, e)
		report.Spawned++

		// Attach roughly half the entities under an earlier one.
		if len(created) > 0 && rng.IntN(2) == 0 {
			parent := created[rng.IntN(len(created))]
			if err := world.SetParent(e, parent); err != nil {
				report.CyclesRefused++
			} else {
				report.Reparents++
			}
		}
		created = append(created, e)
	}
}

func attachRandomComponents(world *scene.World, rng *rand.Rand, e scene.Entity) {
	n := rng.IntN(len(componentTypes)) + 1
	for _, idx := range rng.Perm(len(componentTypes))[:n] {
		componentType := componentTypes[idx]
		world.SetComponent(e, componentType, randomData(rng, componentType))
	}
}

func randomData(rng *rand.Rand, componentType string) any {
	switch componentType {
	case "Transform":
		return manifest.TransformData{
			Position: [3]float64{rng.Float64(), rng.Float64(), rng.Float64()},
			Scale:    [3]float64{1, 1, 1},
		}
	case "MeshRenderer":
		return manifest.MeshRendererData{
			MeshID:         fmt.Sprintf("mesh-%d", rng.IntN(16)),
			Enabled:        rng.IntN(8) != 0,
			CastShadows:    true,
			ReceiveShadows: true,
		}
	case "Light":
		return manifest.LightData{Kind: "point", Intensity: rng.Float64() * 10}
	case "RigidBody":
		return manifest.RigidBodyData{BodyType: "dynamic", Mass: 1 + rng.Float64()*9}
	case "Collider":
		return manifest.ColliderData{Shape: "box", Friction: rng.Float64(), Restitution: rng.Float64()}
	default:
		return nil
	}
}

func tick(world *scene.World, reg *manifest.Registry, rng *rand.Rand, churn ChurnConfig, report *Report) {
	cmds := scene.NewCommands()
	for i := 0; i < churn.SpawnsPerTick; i++ {
		cmds.Spawn("", scene.ComponentEntry{Type: "Transform", Data: randomData(rng, "Transform")})
		report.Spawned++
	}
	initial := world.EntityIndex().All()
	for i := 0; i < churn.DestroysPerTick && len(initial) > 0; i++ {
		cmds.Destroy(initial[rng.IntN(len(initial))])
		report.Destroyed++
	}
	// Spawns and destroys are structural, so they go through the command
	// buffer the way a system would queue them mid-frame.
	_ = cmds.Flush(world)

	live := world.EntityIndex().All()
	pick := func() (scene.Entity, bool) {
		if len(live) == 0 {
			return 0, false
		}
		return live[rng.IntN(len(live))], true
	}

	for i := 0; i < churn.SetsPerTick; i++ {
		if e, ok := pick(); ok {
			componentType := componentTypes[rng.IntN(len(componentTypes))]
			world.SetComponent(e, componentType, randomData(rng, componentType))
		}
	}
	for i := 0; i < churn.RemovesPerTick; i++ {
		if e, ok := pick(); ok {
			world.RemoveComponent(e, componentTypes[rng.IntN(len(componentTypes))])
		}
	}
	for i := 0; i < churn.ReparentsPerTick; i++ {
		child, okC := pick()
		parent, okP := pick()
		if !okC || !okP {
			break
		}
		if err := world.SetParent(child, parent); err != nil {
			report.CyclesRefused++
		} else {
			report.Reparents++
		}
	}
	for i := 0; i < churn.RenamesPerTick; i++ {
		if e, ok := pick(); ok {
			world.MetadataManager().SetName(e, fmt.Sprintf("Entity %d-%d", e, rng.IntN(1000)))
		}
	}

	for i := 0; i < churn.QueriesPerTick; i++ {
		a := componentTypes[rng.IntN(len(componentTypes))]
		b := componentTypes[rng.IntN(len(componentTypes))]
		matched := world.ComponentIndex().ListWithAllComponents([]string{a, b})
		report.Queries++
		report.QueryHits += int64(len(matched))

		// Resolve descriptors for a sample of the matches, the way a
		// render/physics system would each frame.
		for _, e := range matched[:min(len(matched), 10)] {
			sources := make([]manifest.Source, 0, 5)
			for _, entry := range world.Components(e) {
				sources = append(sources, manifest.Source{ComponentType: entry.Type, Data: entry.Data})
			}
			_ = manifest.CombineRendering(reg, sources)
			_ = manifest.CombinePhysics(reg, sources)
		}
	}
}

// metadataChecksum hashes a metadata snapshot in stable (sorted) key order
// so two snapshots with identical contents always produce the same value.
func metadataChecksum(records map[scene.Entity]scene.Metadata) uint64 {
	ids := make([]scene.Entity, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	h := xxhash.New()
	var buf [8]byte
	for _, id := range ids {
		meta := records[id]
		binary.LittleEndian.PutUint64(buf[:], uint64(id))
		h.Write(buf[:])
		h.WriteString(meta.Name)
		h.WriteString(meta.GUID)
		binary.LittleEndian.PutUint64(buf[:], uint64(meta.Created))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(meta.Modified))
		h.Write(buf[:])
	}
	return h.Sum64()
}
