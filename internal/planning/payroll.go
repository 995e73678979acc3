package planning

import (
	"time"

	"vigiplan-backend/internal/models"
)

// PayrollSummary aggregates one agent's hours across every mission and
// calendar event referencing them, split at a reference instant.
// TotalPlanned is always TotalDone + FutureHours, assigned at the end of the
// aggregation rather than recomputed, so the invariant holds exactly.
type PayrollSummary struct {
	AgentID      string  `json:"agent_id"`
	TotalPlanned float64 `json:"total_planned"`
	TotalDone    float64 `json:"total_done"`
	FutureHours  float64 `json:"future_hours"`
	NightHours   float64 `json:"night_hours"`
	SundayHours  float64 `json:"sunday_hours"`
	HolidayHours float64 `json:"holiday_hours"`
}

// EventInterval converts a pre-resolved planning event into an engine interval
func EventInterval(e models.PlanningEvent) Interval {
	return Interval{
		Start: time.Unix(e.StartsAt, 0).In(planningZone),
		End:   time.Unix(e.EndsAt, 0).In(planningZone),
	}
}

// Summarize computes the payroll summary for one agent. A shift whose resolved
// end is at or before the reference instant counts as done, otherwise as
// future; premium buckets accumulate either way. The reference instant is
// always passed in, the engine never reads the system clock.
//
// Missions, assignments, vacations and events are processed in input order so
// the floating-point totals are reproducible run to run.
func Summarize(agentID string, missions []models.Mission, events []models.PlanningEvent, now time.Time) (PayrollSummary, error) {
	summary := PayrollSummary{AgentID: agentID}

	for i := range missions {
		assignment := missions[i].AssignmentFor(agentID)
		if assignment == nil {
			continue
		}
		for _, v := range assignment.Vacations {
			iv, err := ResolveVacation(v)
			if err != nil {
				return PayrollSummary{}, err
			}
			summary.add(iv, now)
		}
	}

	for _, e := range events {
		if e.AgentID != agentID {
			continue
		}
		iv := EventInterval(e)
		if err := iv.Validate(); err != nil {
			return PayrollSummary{}, err
		}
		summary.add(iv, now)
	}

	summary.TotalPlanned = summary.TotalDone + summary.FutureHours
	return summary, nil
}

func (s *PayrollSummary) add(iv Interval, now time.Time) {
	b := Classify(iv)

	if iv.End.After(now) {
		s.FutureHours += b.Total
	} else {
		s.TotalDone += b.Total
	}
	s.NightHours += b.Night
	s.SundayHours += b.Sunday
	s.HolidayHours += b.Holiday
}

// MissionStats is the dashboard aggregate over the whole mission set
type MissionStats struct {
	TotalHours  float64 `json:"total_hours"`
	DoneHours   float64 `json:"done_hours"`
	FutureHours float64 `json:"future_hours"`
	AgentsCount int     `json:"agents_count"`
	SitesCount  int     `json:"sites_count"`
}

// ComputeMissionStats aggregates hours across all missions and counts agents
// with upcoming work and sites with at least one upcoming shift.
func ComputeMissionStats(missions []models.Mission, now time.Time) (MissionStats, error) {
	var stats MissionStats
	activeAgents := make(map[string]struct{})
	activeSites := make(map[string]struct{})

	for i := range missions {
		mission := &missions[i]
		missionActive := false

		for _, assignment := range mission.AgentAssignments {
			for _, v := range assignment.Vacations {
				iv, err := ResolveVacation(v)
				if err != nil {
					return MissionStats{}, err
				}
				hours := Classify(iv).Total

				if iv.End.After(now) {
					stats.FutureHours += hours
					activeAgents[assignment.AgentID] = struct{}{}
					missionActive = true
				} else {
					stats.DoneHours += hours
				}
				stats.TotalHours += hours
			}
		}

		if missionActive {
			activeSites[mission.SiteID] = struct{}{}
		}
	}

	stats.AgentsCount = len(activeAgents)
	stats.SitesCount = len(activeSites)
	return stats, nil
}
