// Package funnel holds the filter engine and the funnel flow builder.
// Both are pure functions over the loaded snapshot.
package funnel

import (
	"errors"
	"fmt"

	dataset "ott-insights-service/internal/dataset/core/domain"
	"ott-insights-service/internal/insights/core/domain"
)

var ErrDuplicateStep = errors.New("duplicate funnel step name")

// steps is the fixed subscription funnel, in progression order.
// Adjacency here, not chronological adjacency in the event log, defines
// what counts as a conversion.
var steps = []string{
	"SUBSCRIPTION-CURATED-PLAN-SELECTION-LAUNCH",
	"SUBSCRIPTION-CURATED-PLAN-SELECTION-PROCEED",
	"APP-SELECTION-PAGE",
	"CHOOSE_YOUR_APP_PROCEED",
	"SUBSCRIPTION-SUMMARY-LAUNCH",
	"SUBSCRIPTION-SUMMARY-PROCEED",
	"PAYMENT-INITIATE",
	"PAYMENT",
	"BINGE-SUBSCRIPTION",
	"SUBSCRIBE-SUCCESS",
}

// Steps returns a copy of the configured funnel step sequence.
func Steps() []string {
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}

// ValidateSteps rejects sequences with duplicate names. Index lookup by
// name would be ambiguous otherwise, so duplicates are disallowed by
// construction instead of given tie-break semantics.
func ValidateSteps(seq []string) error {
	seen := make(map[string]struct{}, len(seq))
	for _, s := range seq {
		if _, ok := seen[s]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateStep, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// StepIndex maps each step name to its position in the sequence, for
// renderers that address flow nodes by integer. First occurrence wins.
func StepIndex(seq []string) map[string]int {
	idx := make(map[string]int, len(seq))
	for i, s := range seq {
		if _, ok := idx[s]; !ok {
			idx[s] = i
		}
	}
	return idx
}

// Apply returns the events whose event_date falls inside the inclusive
// date window and that match the optional platform and user_type
// equality filters. Input order is preserved. A start date after the
// end date is not an error; it simply selects nothing.
func Apply(events []dataset.Event, f domain.Filter) []dataset.Event {
	out := make([]dataset.Event, 0, len(events))
	for _, e := range events {
		if e.EventDate.Before(f.StartDate) || e.EventDate.After(f.EndDate) {
			continue
		}
		if f.Platform != "" {
			if v, ok := e.Get(dataset.ColPlatform); !ok || v != f.Platform {
				continue
			}
		}
		if f.UserType != "" {
			if v, ok := e.Get(dataset.ColUserType); !ok || v != f.UserType {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// BuildFlow turns the filtered events and the ordered step sequence into
// the linear flow graph: one edge per adjacent step pair.
//
// Volume is min(source count, target count) and the percentage is a
// plain count ratio. This is a magnitude proxy, not a cohort join: no
// user identity or temporal ordering between the two steps is tracked,
// so a malformed funnel can legitimately yield a percentage above 100.
func BuildFlow(events []dataset.Event, seq []string) []domain.FlowEdge {
	if len(seq) < 2 {
		return []domain.FlowEdge{}
	}

	counts := make(map[string]int, len(seq))
	for _, e := range events {
		counts[e.EventName]++
	}

	edges := make([]domain.FlowEdge, 0, len(seq)-1)
	for i := 0; i < len(seq)-1; i++ {
		srcCount := counts[seq[i]]
		tgtCount := counts[seq[i+1]]

		volume := srcCount
		if tgtCount < srcCount {
			volume = tgtCount
		}

		var percent float64
		if srcCount > 0 {
			percent = float64(tgtCount) / float64(srcCount) * 100
		}

		edges = append(edges, domain.FlowEdge{
			Source:            seq[i],
			Target:            seq[i+1],
			Volume:            volume,
			ConversionPercent: percent,
		})
	}

	return edges
}
