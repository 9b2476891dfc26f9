// Package playback maps elapsed play time onto the frames of a decoded
// sequence.
package playback

import (
	"time"

	"gifplayer/internal/decoder"
)

// State of a Player.
type State int

const (
	Stopped State = iota // Not advancing, elapsed time at 0
	Playing              // Advancing on every Tick
	Paused               // Not advancing, elapsed time kept
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// Player advances through a sequence as the host calls Tick. It is driven from
// a single update loop and does no locking.
type Player struct {
	seq      decoder.Sequence
	timeline Timeline
	elapsed  time.Duration
	index    int
	state    State
}

// NewPlayer creates a stopped Player with nothing to show.
func NewPlayer() *Player {
	return &Player{}
}

// SetSequence replaces what the player shows. An empty sequence shows nothing,
// a single frame is shown as a still image, anything longer starts playing
// from the first frame.
func (p *Player) SetSequence(seq decoder.Sequence) {
	switch len(seq) {
	case 0:
		*p = Player{}
	case 1:
		*p = Player{seq: seq}
	default:
		*p = Player{
			seq:      seq,
			timeline: NewTimeline(seq),
			state:    Playing,
		}
	}
}

// Tick advances the play time by dt. It does nothing unless an animation is
// playing.
func (p *Player) Tick(dt time.Duration) {
	if p.state != Playing || !p.Animated() || dt <= 0 {
		return
	}
	p.elapsed += dt
	p.index = p.timeline.IndexAt(p.elapsed)
}

// Current returns the frame to display, or nil when there is none.
func (p *Player) Current() *decoder.Frame {
	if len(p.seq) == 0 {
		return nil
	}
	return &p.seq[p.index]
}

// Play resumes advancing from the current play time.
func (p *Player) Play() {
	if p.Animated() {
		p.state = Playing
	}
}

// Pause freezes the play time.
func (p *Player) Pause() {
	if p.state == Playing {
		p.state = Paused
	}
}

// Stop freezes playback and rewinds to the first frame.
func (p *Player) Stop() {
	p.state = Stopped
	p.rewind()
}

// Restart rewinds to the first frame and plays.
func (p *Player) Restart() {
	p.rewind()
	p.Play()
}

// Clear drops the sequence, leaving nothing displayed.
func (p *Player) Clear() {
	*p = Player{}
}

func (p *Player) rewind() {
	p.elapsed = 0
	p.index = 0
}

// Animated reports whether the sequence has enough frames to be scheduled.
func (p *Player) Animated() bool {
	return len(p.seq) >= 2
}

func (p *Player) State() State               { return p.state }
func (p *Player) Index() int                 { return p.index }
func (p *Player) Len() int                   { return len(p.seq) }
func (p *Player) Elapsed() time.Duration     { return p.elapsed }
func (p *Player) Timeline() Timeline         { return p.timeline }
func (p *Player) Sequence() decoder.Sequence { return p.seq }

// Duration is the length of one loop, zero when not animated.
func (p *Player) Duration() time.Duration {
	return p.timeline.Total()
}
