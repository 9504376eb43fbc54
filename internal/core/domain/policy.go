package domain

import (
	"fmt"
	"strings"
)

// ConflictPolicy names the set of statuses that hold a (date, slot) pair.
// The admission pre-check and the storage partial unique index are both
// derived from the same value.
type ConflictPolicy struct {
	Name      string
	IndexName string
	Statuses  []BookingStatus
}

var (
	PolicyConfirmedOnly = ConflictPolicy{
		Name:      "confirmed_only",
		IndexName: "unique_confirmed_booking_idx",
		Statuses:  []BookingStatus{BookingConfirmed},
	}
	PolicyPendingConfirmed = ConflictPolicy{
		Name:      "pending_confirmed",
		IndexName: "unique_active_booking_idx",
		Statuses:  []BookingStatus{BookingPending, BookingConfirmed},
	}
)

var policies = []ConflictPolicy{PolicyConfirmedOnly, PolicyPendingConfirmed}

func KnownPolicies() []ConflictPolicy {
	out := make([]ConflictPolicy, len(policies))
	copy(out, policies)
	return out
}

func ParseConflictPolicy(name string) (ConflictPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PolicyConfirmedOnly, nil
	}
	for _, p := range policies {
		if p.Name == name {
			return p, nil
		}
	}
	return ConflictPolicy{}, fmt.Errorf("unknown conflict policy %q", name)
}

func (p ConflictPolicy) Holds(status BookingStatus) bool {
	for _, s := range p.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (p ConflictPolicy) StatusStrings() []string {
	out := make([]string, 0, len(p.Statuses))
	for _, s := range p.Statuses {
		out = append(out, string(s))
	}
	return out
}

// IndexPredicate renders the WHERE clause of the partial unique index.
// Status values are fixed constants, never user input.
func (p ConflictPolicy) IndexPredicate() string {
	quoted := make([]string, 0, len(p.Statuses))
	for _, s := range p.Statuses {
		quoted = append(quoted, "'"+string(s)+"'")
	}
	return "status IN (" + strings.Join(quoted, ", ") + ")"
}
