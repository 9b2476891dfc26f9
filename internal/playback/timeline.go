package playback

import (
	"sort"
	"time"

	"gifplayer/internal/decoder"
)

// Timeline holds, for every frame, the time at which it stops being shown:
// entry i is the sum of the delays of frames 0..i.
type Timeline []time.Duration

// NewTimeline builds the cumulative end times of seq.
func NewTimeline(seq decoder.Sequence) Timeline {
	tl := make(Timeline, len(seq))
	var end time.Duration
	for i, f := range seq {
		end += f.Delay
		tl[i] = end
	}
	return tl
}

// Total is the length of one loop.
func (tl Timeline) Total() time.Duration {
	if len(tl) == 0 {
		return 0
	}
	return tl[len(tl)-1]
}

// IndexAt maps an elapsed play time to the frame shown at that moment,
// wrapping around the loop. With a zero-length loop it stays on frame 0.
func (tl Timeline) IndexAt(elapsed time.Duration) int {
	total := tl.Total()
	if total <= 0 {
		return 0
	}

	frameTime := elapsed % total
	i := sort.Search(len(tl), func(i int) bool {
		return frameTime < tl[i]
	})
	if i == len(tl) {
		return 0
	}
	return i
}
