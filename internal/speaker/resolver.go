// Package speaker decides which room participant is the partner whose speech
// the coach listens to.
package speaker

import (
	"regexp"
	"slices"
	"sync"
)

type Participant struct {
	ID          string
	DisplayName string
}

// Resolver assigns at most one partner per session. A display name matching
// the pattern wins immediately; otherwise the second human to join is taken.
type Resolver struct {
	mu           sync.RWMutex
	pattern      *regexp.Regexp
	participants map[string]string
	joinOrder    []string
	partnerID    string
}

func NewResolver(pattern *regexp.Regexp) *Resolver {
	return &Resolver{
		pattern:      pattern,
		participants: make(map[string]string),
	}
}

// Join records a participant and returns true when it became the partner.
// Self joins (the bot) are ignored.
func (r *Resolver) Join(p Participant, isSelf bool) bool {
	if isSelf || p.ID == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, known := r.participants[p.ID]; !known {
		r.joinOrder = append(r.joinOrder, p.ID)
	}
	r.participants[p.ID] = p.DisplayName

	if r.partnerID != "" {
		return false
	}
	if r.matches(p.DisplayName) || len(r.joinOrder) == 2 {
		r.partnerID = p.ID
		return true
	}
	return false
}

// Leave forgets a participant. It returns true when the departing participant
// was the partner, in which case the assignment and join order are cleared.
func (r *Resolver) Leave(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.participants, id)
	if id == "" || id != r.partnerID {
		return false
	}
	r.partnerID = ""
	r.joinOrder = nil
	return true
}

func (r *Resolver) PartnerID() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.partnerID, r.partnerID != ""
}

func (r *Resolver) IsPartner(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return id != "" && id == r.partnerID
}

func (r *Resolver) JoinOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.joinOrder)
}

func (r *Resolver) DisplayName(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.participants[id]
	return name, ok
}

// Reset drops the assignment and the join order. Known display names are kept
// so that participants still in the room can be named in logs.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partnerID = ""
	r.joinOrder = nil
}

// matches anchors the pattern at the start of the name.
func (r *Resolver) matches(name string) bool {
	if r.pattern == nil || name == "" {
		return false
	}
	loc := r.pattern.FindStringIndex(name)
	return loc != nil && loc[0] == 0
}
