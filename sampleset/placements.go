package sampleset

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/harlowdev/siftstone/plantkind"
)

// BlockPos is an integer block coordinate triple.
type BlockPos struct {
	X, Y, Z int32
}

// Sub returns p - o as a displacement.
func (p BlockPos) Sub(o BlockPos) (dx, dy, dz int32) {
	return p.X - o.X, p.Y - o.Y, p.Z - o.Z
}

// Placement is one host-recorded plant: its block position, catalog kind,
// and the three render-offset nibbles the host read off the model.
type Placement struct {
	Pos        BlockPos
	Kind       plantkind.PlantKind
	OX, OY, OZ uint8
}

type placementPos struct{ Pos BlockPos }
type placementOffset struct{ OX, OY, OZ uint8 }
type placementKind struct{ Kind plantkind.PlantKind }
type placementSeq struct{ Seq int }

// Placements is an in-process store for the host's placement list, backed by
// an ark ECS world. The host appends placements as the player places plants;
// Ordered drains them back out in insertion order with any reference-cube
// placement excluded, ready for Build.
type Placements struct {
	world  *ecs.World
	mapper *ecs.Map4[placementPos, placementOffset, placementKind, placementSeq]
	filter *ecs.Filter4[placementPos, placementOffset, placementKind, placementSeq]
	next   int
}

// NewPlacements creates an empty placement store.
func NewPlacements() *Placements {
	world := ecs.NewWorld()
	return &Placements{
		world:  world,
		mapper: ecs.NewMap4[placementPos, placementOffset, placementKind, placementSeq](world),
		filter: ecs.NewFilter4[placementPos, placementOffset, placementKind, placementSeq](world),
	}
}

// Add records a new placement in insertion order and returns its entity
// handle, in case the host wants to remove it later (e.g. the player deletes
// a marker).
func (p *Placements) Add(pos BlockPos, kind plantkind.PlantKind, ox, oy, oz uint8) ecs.Entity {
	seq := p.next
	p.next++
	return p.mapper.NewEntity(
		&placementPos{Pos: pos},
		&placementOffset{OX: ox, OY: oy, OZ: oz},
		&placementKind{Kind: kind},
		&placementSeq{Seq: seq},
	)
}

// Remove deletes a previously added placement.
func (p *Placements) Remove(e ecs.Entity) {
	p.world.RemoveEntity(e)
}

// Len reports the number of recorded placements, including any reference
// cube.
func (p *Placements) Len() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Ordered returns every recorded placement except reference cubes, in the
// order they were added. ECS iteration order is not itself a stability
// contract, so each entity's recorded sequence number is used to sort the
// result rather than relying on query order.
func (p *Placements) Ordered() []Placement {
	type seqed struct {
		seq   int
		place Placement
	}
	drained := make([]seqed, 0, p.next)

	query := p.filter.Query()
	for query.Next() {
		pos, off, kind, seq := query.Get()
		if kind.Kind == plantkind.KindReferenceCube {
			continue
		}
		drained = append(drained, seqed{
			seq: seq.Seq,
			place: Placement{
				Pos:  pos.Pos,
				Kind: kind.Kind,
				OX:   off.OX,
				OY:   off.OY,
				OZ:   off.OZ,
			},
		})
	}

	// Insertion sort by recorded sequence number; placement lists are small
	// (tens of entries) and this runs once per scan, not per candidate.
	for i := 1; i < len(drained); i++ {
		j := i
		for j > 0 && drained[j-1].seq > drained[j].seq {
			drained[j-1], drained[j] = drained[j], drained[j-1]
			j--
		}
	}

	out := make([]Placement, len(drained))
	for i, d := range drained {
		out[i] = d.place
	}
	return out
}
