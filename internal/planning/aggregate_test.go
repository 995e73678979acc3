package planning

import (
	"testing"

	"vigiplan-backend/internal/models"
)

// boundaryMission is the two-agent scenario used across aggregation tests:
// agent A works a 4h day shift, agent B a 10h overnight shift.
func boundaryMission() models.Mission {
	return models.Mission{
		ID:       "m1",
		SiteID:   "site-1",
		SiteName: "Marina Baie des Anges",
		Status:   models.MissionStatusScheduled,
		AgentAssignments: models.AssignmentList{
			{
				AgentID: "agent-a", AgentName: "Jean Dupont", Specialty: "ADS",
				Vacations: []models.Vacation{{Date: "2025-12-08", Start: "08:00", End: "12:00"}},
			},
			{
				AgentID: "agent-b", AgentName: "Marie Martin", Specialty: "SSIAP1",
				Vacations: []models.Vacation{{Date: "2025-12-08", Start: "20:00", End: "06:00"}},
			},
		},
		AssignedAgentIDs: []string{"agent-a", "agent-b"},
	}
}

func TestAgentDuration(t *testing.T) {
	m := boundaryMission()

	d, err := AgentDuration(&m, "agent-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Hours != 10 || d.Minutes != 0 {
		t.Fatalf("expected 10h00, got %dh%02d", d.Hours, d.Minutes)
	}
}

func TestAgentDurationTruncatesMinutes(t *testing.T) {
	m := makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
		models.Vacation{Date: "2025-12-08", Start: "08:00", End: "12:30"},
		models.Vacation{Date: "2025-12-09", Start: "13:15", End: "15:00"},
	)

	d, err := AgentDuration(&m, "agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 4h30 + 1h45 = 6h15
	if d.Hours != 6 || d.Minutes != 15 {
		t.Fatalf("expected 6h15, got %dh%02d", d.Hours, d.Minutes)
	}
}

func TestAgentDurationUnknownAgent(t *testing.T) {
	m := boundaryMission()

	d, err := AgentDuration(&m, "agent-nobody")
	if err != nil {
		t.Fatalf("missing agent must not be an error: %v", err)
	}
	if d.Hours != 0 || d.Minutes != 0 {
		t.Fatalf("missing agent must contribute zero, got %+v", d)
	}
}

func TestMissionDuration(t *testing.T) {
	m := boundaryMission()

	d, err := MissionDuration(&m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 4h + 10h of staffed hours, overlaps double-counted by design
	if d.Hours != 14 || d.Minutes != 0 {
		t.Fatalf("expected 14h00, got %dh%02d", d.Hours, d.Minutes)
	}
}

func TestMissionPeriod(t *testing.T) {
	m := boundaryMission()

	start, end, err := MissionPeriod(&m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start == nil || end == nil {
		t.Fatal("expected a non-empty period")
	}
	if start.Format("2006-01-02 15:04") != "2025-12-08 08:00" {
		t.Fatalf("expected period start 2025-12-08 08:00, got %v", start)
	}
	if end.Format("2006-01-02 15:04") != "2025-12-09 06:00" {
		t.Fatalf("expected period end 2025-12-09 06:00, got %v", end)
	}
}

func TestMissionPeriodEmptyMission(t *testing.T) {
	m := models.Mission{ID: "m-empty", SiteName: "Port Vauban"}

	start, end, err := MissionPeriod(&m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != nil || end != nil {
		t.Fatalf("expected nil period for empty mission, got %v - %v", start, end)
	}
}

func TestMissionDurationMalformedVacation(t *testing.T) {
	m := makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
		models.Vacation{Date: "2025-12-08", Start: "nope", End: "12:00"})

	if _, err := MissionDuration(&m); err == nil {
		t.Fatal("expected error for malformed vacation")
	}
}
