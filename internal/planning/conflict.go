package planning

import "vigiplan-backend/internal/models"

// ConflictDetector reports whether a candidate interval overlaps any of an
// agent's existing intervals. The interface exists so the linear scan can be
// swapped for an interval tree without touching callers; at tens to low
// hundreds of shifts per agent the scan is plenty.
type ConflictDetector interface {
	HasConflict(candidate Interval, existing []Interval) bool
}

// LinearScan is the default ConflictDetector
type LinearScan struct{}

func (LinearScan) HasConflict(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

// Conflict identifies the first double-booking found for a candidate mission.
// The scheduling UI surfaces AgentName and Date in its warning.
type Conflict struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
	Date      string `json:"date"`
	MissionID string `json:"mission_id"`
	SiteName  string `json:"site_name"`
}

// CheckMissionConflicts scans every vacation of the candidate mission against
// all vacations of the same agent across the existing missions. The mission
// identified by excludeMissionID is skipped so that editing a mission in place
// never conflicts with itself. Returns the first conflict found, or nil.
//
// A malformed vacation anywhere aborts the check with a ValidationError: the
// caller must reject the save rather than silently skip the shift.
func CheckMissionConflicts(existing []models.Mission, candidate *models.Mission, excludeMissionID string, detector ConflictDetector) (*Conflict, error) {
	if detector == nil {
		detector = LinearScan{}
	}

	for _, assignment := range candidate.AgentAssignments {
		for _, vacation := range assignment.Vacations {
			candidateIv, err := ResolveVacation(vacation)
			if err != nil {
				return nil, err
			}

			for _, mission := range existing {
				if excludeMissionID != "" && mission.ID == excludeMissionID {
					continue
				}
				other := mission.AssignmentFor(assignment.AgentID)
				if other == nil {
					continue
				}

				intervals, err := assignmentIntervals(*other)
				if err != nil {
					return nil, err
				}
				if detector.HasConflict(candidateIv, intervals) {
					return &Conflict{
						AgentID:   assignment.AgentID,
						AgentName: assignment.AgentName,
						Date:      vacation.Date,
						MissionID: mission.ID,
						SiteName:  mission.SiteName,
					}, nil
				}
			}
		}
	}

	return nil, nil
}

// assignmentIntervals resolves every vacation of one assignment
func assignmentIntervals(a models.AgentAssignment) ([]Interval, error) {
	intervals := make([]Interval, 0, len(a.Vacations))
	for _, v := range a.Vacations {
		iv, err := ResolveVacation(v)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}
