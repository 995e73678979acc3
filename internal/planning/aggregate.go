package planning

import (
	"time"

	"vigiplan-backend/internal/models"
)

// Duration is an hours/minutes pair for display ("14h05"). The decomposition
// truncates to whole minutes, it never rounds up.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func durationFrom(d time.Duration) Duration {
	totalMinutes := int(d.Minutes())
	return Duration{
		Hours:   totalMinutes / 60,
		Minutes: totalMinutes % 60,
	}
}

// AgentDuration sums the resolved durations of all vacations belonging to one
// agent within a mission. An agent without an assignment in the mission
// contributes zero; referencing an unknown agent is not an error.
func AgentDuration(m *models.Mission, agentID string) (Duration, error) {
	assignment := m.AssignmentFor(agentID)
	if assignment == nil {
		return Duration{}, nil
	}

	var total time.Duration
	for _, v := range assignment.Vacations {
		iv, err := ResolveVacation(v)
		if err != nil {
			return Duration{}, err
		}
		total += iv.Duration()
	}
	return durationFrom(total), nil
}

// MissionDuration sums every assignment's vacations. Two agents covering the
// same hours are counted twice: this is total staffed hours, not site-coverage
// time.
func MissionDuration(m *models.Mission) (Duration, error) {
	var total time.Duration
	for _, assignment := range m.AgentAssignments {
		for _, v := range assignment.Vacations {
			iv, err := ResolveVacation(v)
			if err != nil {
				return Duration{}, err
			}
			total += iv.Duration()
		}
	}
	return durationFrom(total), nil
}

// MissionPeriod returns the earliest start and latest end across all vacations
// of all assignments, or nil/nil for a mission with no shifts.
func MissionPeriod(m *models.Mission) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	for _, assignment := range m.AgentAssignments {
		for _, v := range assignment.Vacations {
			iv, err := ResolveVacation(v)
			if err != nil {
				return nil, nil, err
			}
			if start == nil || iv.Start.Before(*start) {
				s := iv.Start
				start = &s
			}
			if end == nil || iv.End.After(*end) {
				e := iv.End
				end = &e
			}
		}
	}

	return start, end, nil
}
