package buffer

// Pool is the eviction-policy capability the BufferPoolManager is built on.
// Only clock-sweep ships here, but the manager is constructed against this
// interface rather than a concrete type, mirroring the original engine's
// pluggable eviction-strategy trait.
type Pool interface {
	// Size returns the fixed number of frames in the pool.
	Size() int
	// FrameAt returns the frame at the given slot index, in [0, Size()).
	FrameAt(id int) *Frame
	// Evict selects and returns a frame index whose buffer may be
	// overwritten, or ok=false if every frame is currently pinned.
	Evict() (id int, ok bool)
}

// ClockSweepPool is a fixed-size array of frames plus a rotating cursor,
// implementing second-chance (clock-sweep) eviction.
type ClockSweepPool struct {
	frames       []*Frame
	nextVictimID int
}

// NewClockSweepPool allocates a pool of the given size, every frame starting
// out empty (holding the sentinel page id, usage count 0, unpinned).
func NewClockSweepPool(size int) *ClockSweepPool {
	if size <= 0 {
		panic("buffer: pool size must be positive")
	}
	frames := make([]*Frame, size)
	for i := range frames {
		frames[i] = newFrame()
	}
	return &ClockSweepPool{frames: frames}
}

func (p *ClockSweepPool) Size() int { return len(p.frames) }

func (p *ClockSweepPool) FrameAt(id int) *Frame { return p.frames[id] }

// Evict repeatedly examines the frame at the cursor: a frame with
// usageCount 0 is the immediate victim (the cursor is not advanced in this
// case — the frame is about to be freshly used, so the next sweep should
// start past it once it is). An unpinned frame with nonzero usage count has
// its count decremented and the cursor advances. A pinned frame advances a
// "consecutive pinned" counter instead; if that counter reaches pool size,
// every frame is pinned and Evict reports no victim.
func (p *ClockSweepPool) Evict() (int, bool) {
	size := p.Size()
	consecutivePinned := 0

	for {
		victim := p.nextVictimID
		f := p.frames[victim]

		if f.usageCount == 0 {
			return victim, true
		}
		if !f.Pinned() {
			f.usageCount--
			consecutivePinned = 0
		} else {
			consecutivePinned++
			if consecutivePinned >= size {
				return 0, false
			}
		}
		p.nextVictimID = (p.nextVictimID + 1) % size
	}
}
