package app

import (
	"sync"

	"github.com/randomtoy/cropreport-go/internal/domain"
)

// PendingRequest holds one completed input set for a presentation context and
// hands it out at most once, so a re-render cannot trigger a second report for
// the same inputs.
type PendingRequest struct {
	mu       sync.Mutex
	req      domain.ReportRequest
	set      bool
	consumed bool
}

// NewPendingRequest returns a guard holding req, not yet consumed.
func NewPendingRequest(req domain.ReportRequest) *PendingRequest {
	return &PendingRequest{req: req, set: true}
}

// Take returns the held request and marks it consumed. The second and later
// calls return false until Reset supplies a new input set.
func (p *PendingRequest) Take() (domain.ReportRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.set || p.consumed {
		return domain.ReportRequest{}, false
	}
	p.consumed = true
	req := p.req
	p.req = domain.ReportRequest{}
	return req, true
}

// Reset replaces the held input set and clears the consumed flag.
func (p *PendingRequest) Reset(req domain.ReportRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.req = req
	p.set = true
	p.consumed = false
}

// Consumed reports whether the current input set has already been taken.
func (p *PendingRequest) Consumed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consumed
}
