package tracker

import "context"

// Pending is the result of a submitted action.
type Pending struct {
	done      chan struct{}
	abandoned <-chan struct{}
	err       error
}

func newPending(abandoned <-chan struct{}) *Pending {
	return &Pending{done: make(chan struct{}), abandoned: abandoned}
}

func resolved(err error) *Pending {
	p := newPending(nil)
	p.resolve(err)
	return p
}

func (p *Pending) resolve(err error) {
	p.err = err
	close(p.done)
}

// Wait blocks until the action finished, the tracker was closed or ctx is
// done. Actions cut short by Close report ErrClosed.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-p.abandoned:
		select {
		case <-p.done:
			return p.err
		default:
			return ErrClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
