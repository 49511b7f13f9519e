package game

import (
	"math"
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/planetsoup/config"
	"github.com/pthm-cable/planetsoup/systems"
)

// parallelThreshold is the minimum agent count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// Steering noise channels share one noise field, decorrelated by constant
// z offsets. The turn blends a slow drift sample with a faster jitter
// sample; the wobble is a third independent channel.
const (
	turnFineRatio  = 4.0
	turnFineWeight = 0.35
	turnFineOffset = 113.7
	wobbleOffset   = 57.3
)

// agentSnapshot captures read-only state for parallel processing.
type agentSnapshot struct {
	Entity          ecs.Entity
	Dir             r3.Vec
	Rot             quat.Number
	Seed            float64
	SeaOnlyMove     bool
	LandSpeedFactor float64
}

// moveIntent captures computed outputs to apply after the parallel phase.
type moveIntent struct {
	Dir r3.Vec
	Pos r3.Vec
	Rot quat.Number
}

// workChunk represents a range of agents for a worker to process.
type workChunk struct {
	start, end int
	dt         float64
}

// parallelState holds resources for parallel movement computation.
type parallelState struct {
	snapshots  []agentSnapshot
	intents    []moveIntent
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]agentSnapshot, 0, 512),
		intents:    make([]moveIntent, 0, 512),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk.start, chunk.end, chunk.dt)
			p.doneChan <- struct{}{}
		}
	}
}

// updateMovementParallel runs the three-phase movement update:
// snapshot, compute, apply. Only the compute phase fans out; it touches
// no ECS storage and no resource field, so chunks never contend.
func (g *Game) updateMovementParallel(dt float64) {
	// Phase A: Build snapshots (single-threaded)
	g.parallel.snapshots = g.parallel.snapshots[:0]

	query := g.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, rot, vitals, traits, motion := query.Get()

		if !vitals.Alive {
			continue
		}

		g.parallel.snapshots = append(g.parallel.snapshots, agentSnapshot{
			Entity:          entity,
			Dir:             motion.Dir,
			Rot:             rot.Rot,
			Seed:            motion.Seed,
			SeaOnlyMove:     traits.SeaOnlyMove,
			LandSpeedFactor: traits.LandSpeedFactor,
		})
	}

	n := len(g.parallel.snapshots)
	if n == 0 {
		return
	}

	if cap(g.parallel.intents) < n {
		g.parallel.intents = make([]moveIntent, n)
	}
	g.parallel.intents = g.parallel.intents[:n]

	// Phase B: Compute - single or parallel based on agent count
	if n < parallelThreshold {
		g.computeChunk(0, n, dt)
	} else {
		g.computeParallel(n, dt)
	}

	// Phase C: Apply intents (single-threaded, preserves determinism)
	g.applyIntents()
}

// computeParallel dispatches work to the worker pool.
func (g *Game) computeParallel(n int, dt float64) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end, dt: dt}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// applyIntents writes computed results back to ECS components.
func (g *Game) applyIntents() {
	for i, snap := range g.parallel.snapshots {
		intent := &g.parallel.intents[i]

		pos := g.posMap.Get(snap.Entity)
		rot := g.rotMap.Get(snap.Entity)
		motion := g.motionMap.Get(snap.Entity)

		if pos == nil || rot == nil || motion == nil {
			continue
		}

		motion.Dir = intent.Dir
		pos.Point = intent.Pos
		rot.Rot = intent.Rot
	}
}

// computeChunk processes a range of agents for a single worker. Pure math
// over the snapshot plus read-only terrain and noise lookups.
func (g *Game) computeChunk(i0, i1 int, dt float64) {
	cfg := config.Cfg().Ecosystem.Movement
	radius := g.terrain.Config().Radius
	t := g.clock

	for i := i0; i < i1; i++ {
		snap := &g.parallel.snapshots[i]
		intent := &g.parallel.intents[i]

		dir := snap.Dir

		// Current forward, projected onto the tangent plane.
		forward := systems.Forward(snap.Rot)
		forward = r3.Sub(forward, r3.Scale(r3.Dot(forward, dir), dir))
		if r3.Norm(forward) < 1e-9 {
			forward = tangentFallback(dir)
		}
		forward = r3.Unit(forward)

		// Noise-driven steering: three decorrelated channels per agent.
		turnCoarse := g.wanderNoise.Eval3(t*cfg.TurnFrequency, snap.Seed, 0)
		turnFine := g.wanderNoise.Eval3(t*cfg.TurnFrequency*turnFineRatio, snap.Seed, turnFineOffset)
		wobbleSample := g.wanderNoise.Eval3(t*cfg.WobbleFrequency, snap.Seed, wobbleOffset)

		turnSample := turnCoarse*(1-turnFineWeight) + turnFine*turnFineWeight
		turn := (turnSample*2 - 1) * cfg.TurnStrength * dt
		forward = systems.RotateVec(quat.Number(r3.NewRotation(turn, dir)), forward)

		lateral := r3.Cross(dir, forward)
		travel := r3.Unit(r3.Add(forward,
			r3.Scale((wobbleSample*2-1)*cfg.WobbleStrength, lateral)))

		curSea := g.terrain.IsSea(dir)

		theta := cfg.Speed / radius * dt
		if !curSea {
			theta *= snap.LandSpeedFactor
		}

		candidate := r3.Unit(r3.Add(
			r3.Scale(math.Cos(theta), dir),
			r3.Scale(math.Sin(theta), travel),
		))

		newDir := candidate
		if snap.SeaOnlyMove && (!curSea || !g.terrain.IsSea(candidate)) {
			// Hold position at a shoreline; the heading keeps drifting so
			// the agent eventually points back toward open water.
			newDir = dir
		}

		// Re-project the travel direction onto the new tangent plane.
		newForward := r3.Sub(travel, r3.Scale(r3.Dot(travel, newDir), newDir))
		if r3.Norm(newForward) < 1e-9 {
			newForward = tangentFallback(newDir)
		}
		newForward = r3.Unit(newForward)

		target := systems.LookRotation(newForward, newDir)
		blend := clamp01(cfg.OrientBlend * dt)

		intent.Dir = newDir
		intent.Pos = g.terrain.SurfacePoint(newDir)
		intent.Rot = systems.Slerp(snap.Rot, target, blend)
	}
}

// tangentFallback returns an arbitrary unit tangent for a direction.
func tangentFallback(dir r3.Vec) r3.Vec {
	ref := r3.Vec{X: 1}
	if math.Abs(dir.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	return r3.Unit(r3.Cross(dir, ref))
}
