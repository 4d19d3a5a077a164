package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible clinic run. Two simulators built
// with the same key and identical Parameters produce identical traces and
// metrics.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random streams drawn by the clinic.
const (
	// SubsystemArrivals feeds inter-arrival gaps. It is seeded with the key itself.
	SubsystemArrivals = "arrivals"
	// SubsystemExams feeds exam durations.
	SubsystemExams = "exams"
)

// PartitionedRNG hands out one private random stream per clinic process.
// The arrival stream is seeded with the key and every other stream with
// key XOR fnv1a64(name), so the number of exams started never shifts when
// patients arrive, and vice versa.
//
// Not safe for concurrent use; each Simulator owns its own instance.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates the streams for one run.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// The simulator draws gaps from SubsystemArrivals in scheduleNextArrival
// and exam durations from SubsystemExams in startExam; repeated calls with
// the same name continue the same sequence.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	seed := int64(p.key)
	if name != SubsystemArrivals {
		seed ^= fnv1a64(name)
	}
	r := rand.New(rand.NewSource(seed))
	p.streams[name] = r
	return r
}

// Key returns the key the streams were derived from.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
