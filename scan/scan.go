// Package scan implements the offset solver's core search: for every integer
// candidate origin in a stripe of a search box, evaluate whether the
// candidate's predicted render offsets agree with a frozen SampleSet, in
// either strict or scored mode. The engine is infallible — it never returns
// a Go error — and purely computational: no I/O, no shared mutable state
// beyond a cooperatively-polled cancellation signal.
package scan

import (
	"context"

	"github.com/harlowdev/siftstone/offsethash"
	"github.com/harlowdev/siftstone/sampleset"
)

// Mode selects strict (exact masked-match) or scored (bounded-penalty)
// acceptance.
type Mode int

const (
	Strict Mode = iota
	Scored
)

// SearchBox is the inclusive 3D region a scan covers, plus the hash variant
// used to evaluate it.
type SearchBox struct {
	XLo, XHi int32
	ZLo, ZHi int32
	YLo, YHi int32
	Version  offsethash.Version
}

// Stripe is a contiguous X range of a SearchBox assigned to one worker; Y
// and Z bounds and the hash variant are inherited from the parent box.
type Stripe struct {
	XLo, XHi int32
	ZLo, ZHi int32
	YLo, YHi int32
	Version  offsethash.Version
}

// OfBox returns the single stripe covering b's entire X range — used when
// running without partitioning (e.g. N=1 or in tests).
func OfBox(b SearchBox) Stripe {
	return Stripe{XLo: b.XLo, XHi: b.XHi, ZLo: b.ZLo, ZHi: b.ZHi, YLo: b.YLo, YHi: b.YHi, Version: b.Version}
}

// Match is one accepted candidate origin. Score is only meaningful in Scored
// mode.
type Match struct {
	X, Y, Z int32
	Score   uint32
	Scored  bool
}

// Result is what one stripe scan produced.
type Result struct {
	Matches   []Match
	Done      uint64
	HitCap    bool
	Cancelled bool
}

// defaultCandidateBatch bounds how many candidates the engine evaluates
// between cancellation checks and progress callbacks when the caller doesn't
// supply its own batch size (batchSize <= 0 in Scan).
const defaultCandidateBatch = 10_000

// Engine evaluates candidates against a frozen SampleSet. It carries no
// state across calls to Scan — every field of the search is passed in.
type Engine struct{}

// Scan walks every candidate origin in stripe (Y outer — a single value in
// Modern, ascending Z, ascending X inner, a contractual order that both the
// partitioner and the final sort rely on) and evaluates it against ss. It
// stops early once matchCap matches have been collected, or once ctx is
// cancelled; in either case it returns whatever it already gathered.
//
// progress, if non-nil, is invoked with the running Done count at the same
// cadence as the cancellation check (every batchSize candidates, or every
// defaultCandidateBatch if batchSize <= 0). The engine never blocks on it —
// it is meant to feed a cheap atomic counter or channel send, not perform
// I/O.
func (Engine) Scan(ctx context.Context, stripe Stripe, ss sampleset.SampleSet, mode Mode, tol int, maxScore uint32, matchCap int, batchSize int, progress func(done uint64)) Result {
	var res Result
	if matchCap <= 0 {
		matchCap = 1
	}
	if batchSize <= 0 {
		batchSize = defaultCandidateBatch
	}

	yHi := stripe.YHi
	if stripe.Version == offsethash.Modern {
		yHi = stripe.YLo
	}

	sinceCheck := 0
	for y := stripe.YLo; y <= yHi; y++ {
		for z := stripe.ZLo; z <= stripe.ZHi; z++ {
			for x := stripe.XLo; x <= stripe.XHi; x++ {
				res.Done++
				sinceCheck++
				if sinceCheck >= batchSize {
					sinceCheck = 0
					if progress != nil {
						progress(res.Done)
					}
					if ctx.Err() != nil {
						res.Cancelled = true
						return res
					}
				}

				var accepted bool
				var score uint32
				switch mode {
				case Strict:
					accepted = evalStrict(x, y, z, ss, stripe.Version)
				default:
					accepted, score = evalScored(x, y, z, ss, stripe.Version, tol, maxScore)
				}
				if !accepted {
					continue
				}

				m := Match{X: x, Y: y, Z: z}
				if mode == Scored {
					m.Score = score
					m.Scored = true
				}
				res.Matches = append(res.Matches, m)
				if len(res.Matches) >= matchCap {
					res.HitCap = true
					return res
				}
			}
		}
	}
	return res
}

// plateauEqual implements the pointed-dripstone X/Z equivalence classes:
// {0..3} and {12..15} each collapse to a single class.
func plateauEqual(e, p uint16) bool {
	if e <= 3 && p <= 3 {
		return true
	}
	if e >= 12 && p >= 12 {
		return true
	}
	return e == p
}

// nibble extracts the 4-bit group at axis a (0=X, 1=Y, 2=Z) from a packed12
// value.
func nibble(packed uint16, axis int) uint16 {
	return (packed >> uint(4*axis)) & 0xF
}

func evalStrict(x, y, z int32, ss sampleset.SampleSet, v offsethash.Version) bool {
	for _, s := range ss.Samples {
		pred := offsethash.Packed12(x+s.DX, y+s.DY, z+s.DZ, v)
		if !s.Drip {
			if pred&s.Mask != s.Packed {
				return false
			}
			continue
		}

		// Dripstone: Y is exact, X/Z use plateau equivalence.
		for axis := 0; axis < 3; axis++ {
			if s.Mask&(0xF<<uint(4*axis)) == 0 {
				continue
			}
			pn := nibble(pred, axis)
			en := nibble(s.Packed, axis)
			if axis == 1 {
				if pn != en {
					return false
				}
				continue
			}
			if !plateauEqual(en, pn) {
				return false
			}
		}
	}
	return true
}

func evalScored(x, y, z int32, ss sampleset.SampleSet, v offsethash.Version, tol int, maxScore uint32) (bool, uint32) {
	var score uint32
	for _, s := range ss.Samples {
		pred := offsethash.Packed12(x+s.DX, y+s.DY, z+s.DZ, v)
		for axis := 0; axis < 3; axis++ {
			if s.Mask&(0xF<<uint(4*axis)) == 0 {
				continue
			}
			pn := int(nibble(pred, axis))
			en := int(nibble(s.Packed, axis))

			var d int
			if s.Drip && axis != 1 {
				switch {
				case en <= 3:
					if pn <= 3 {
						d = 0
					} else {
						d = pn - 3
					}
				case en >= 12:
					if pn >= 12 {
						d = 0
					} else {
						d = 12 - pn
					}
				default:
					d = absInt(pn - en)
				}
			} else {
				d = absInt(pn - en)
			}

			if d <= tol {
				score += uint32(d)
			} else {
				score += uint32(d * d)
			}
			if score > maxScore {
				return false, score
			}
		}
	}
	return true, score
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
