package service

import (
	"sync"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ticketfilter"
)

// TicketView is the in-memory ticket set behind one live list. It keeps the
// unfiltered tickets in insertion order so sort ties stay stable, and derives
// the visible list through the filter pipeline.
type TicketView struct {
	mu       sync.Mutex
	viewer   ticketfilter.Viewer
	criteria ticketfilter.Criteria
	tickets  []domain.Ticket
	index    map[string]int
}

// NewTicketView seeds a view. Tickets the viewer may not see are dropped.
func NewTicketView(viewer ticketfilter.Viewer, initial []domain.Ticket, c ticketfilter.Criteria) *TicketView {
	v := &TicketView{
		viewer:   viewer,
		criteria: ticketfilter.Normalize(c),
		tickets:  make([]domain.Ticket, 0, len(initial)),
		index:    make(map[string]int, len(initial)),
	}
	for _, t := range initial {
		v.upsert(t)
	}
	return v
}

// SetCriteria replaces the criteria used by Compute.
func (v *TicketView) SetCriteria(c ticketfilter.Criteria) {
	v.mu.Lock()
	v.criteria = ticketfilter.Normalize(c)
	v.mu.Unlock()
}

// Criteria returns the normalized criteria in effect.
func (v *TicketView) Criteria() ticketfilter.Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// Apply folds a change into the set. It reports whether the set changed.
func (v *TicketView) Apply(change domain.TicketChange) bool {
	if change.Ticket == nil {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.upsert(*change.Ticket)
}

// Compute returns the visible list for the current set and criteria.
func (v *TicketView) Compute() ports.LiveFrame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ports.LiveFrame{
		Tickets: ticketfilter.Apply(v.tickets, v.criteria, v.viewer),
		Total:   len(v.tickets),
	}
}

func (v *TicketView) upsert(t domain.Ticket) bool {
	if !ticketfilter.Visible(&t, v.viewer) {
		return false
	}
	if i, ok := v.index[t.ID]; ok {
		v.tickets[i] = t
		return true
	}
	v.index[t.ID] = len(v.tickets)
	v.tickets = append(v.tickets, t)
	return true
}
