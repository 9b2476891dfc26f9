package assets

import (
	"context"

	"gifplayer/internal/decoder"
)

// Pending is an image being decoded in the background. It is read from a
// single goroutine, the one running the update loop.
type Pending struct {
	Name string

	ctx    context.Context
	cancel context.CancelFunc

	progressChannel chan float64
	done            chan decoder.Sequence

	progress float64
	result   decoder.Sequence
	finished bool
}

func newPending(ctx context.Context, name string) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	return &Pending{
		Name:            name,
		ctx:             ctx,
		cancel:          cancel,
		progressChannel: make(chan float64, 1),
		done:            make(chan decoder.Sequence, 1),
	}
}

// report replaces any progress value the reader has not picked up yet.
func (p *Pending) report(fraction float64) {
	select {
	case <-p.progressChannel:
	default:
	}
	p.progressChannel <- fraction
}

func (p *Pending) finish(seq decoder.Sequence) {
	p.done <- seq
	p.cancel()
}

// Progress returns how much of the image has been decoded, from 0 to 1.
func (p *Pending) Progress() float64 {
	for len(p.progressChannel) > 0 {
		p.progress = <-p.progressChannel
	}
	if _, ok := p.Result(); ok {
		return 1
	}
	return p.progress
}

// Result returns the decoded sequence once it is ready, without blocking.
func (p *Pending) Result() (decoder.Sequence, bool) {
	if !p.finished {
		select {
		case seq := <-p.done:
			p.result, p.finished = seq, true
		default:
		}
	}
	return p.result, p.finished
}

// Wait blocks until the sequence is ready or ctx ends.
func (p *Pending) Wait(ctx context.Context) (decoder.Sequence, error) {
	if p.finished {
		return p.result, nil
	}
	select {
	case seq := <-p.done:
		p.result, p.finished = seq, true
		return seq, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel abandons the decode. The result will be an empty sequence.
func (p *Pending) Cancel() {
	p.cancel()
}
