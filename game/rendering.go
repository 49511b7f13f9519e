package game

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// InstanceBatchSize is the number of agent instances per render batch.
const InstanceBatchSize = 1024

// AgentInstance is the per-agent data the presentation layer consumes.
type AgentInstance struct {
	Pos    r3.Vec
	Rot    quat.Number
	Size   float64
	Energy float64
	Sea    bool
}

// RenderFeed snapshots all living agents into fixed-size batches. The
// returned slices are rebuilt each call and safe to hold for one frame.
func (g *Game) RenderFeed() [][]AgentInstance {
	var batches [][]AgentInstance
	batch := make([]AgentInstance, 0, InstanceBatchSize)

	query := g.agentFilter.Query()
	for query.Next() {
		pos, rot, vitals, _, motion := query.Get()

		if !vitals.Alive {
			continue
		}

		batch = append(batch, AgentInstance{
			Pos:    pos.Point,
			Rot:    rot.Rot,
			Size:   vitals.Size,
			Energy: vitals.Energy,
			Sea:    g.terrain.IsSea(motion.Dir),
		})
		if len(batch) == InstanceBatchSize {
			batches = append(batches, batch)
			batch = make([]AgentInstance, 0, InstanceBatchSize)
		}
	}

	if len(batch) > 0 {
		batches = append(batches, batch)
	}
	return batches
}
