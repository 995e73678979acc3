package planning

import (
	"errors"
	"testing"

	"vigiplan-backend/internal/models"
)

func makeMission(id, siteName, agentID, agentName string, vacations ...models.Vacation) models.Mission {
	return models.Mission{
		ID:       id,
		SiteID:   "site-" + id,
		SiteName: siteName,
		Status:   models.MissionStatusScheduled,
		AgentAssignments: models.AssignmentList{
			{AgentID: agentID, AgentName: agentName, Specialty: "ADS", Vacations: vacations},
		},
		AssignedAgentIDs: []string{agentID},
	}
}

func TestHasConflictBackToBack(t *testing.T) {
	a := mustResolve(t, "2025-12-08", "08:00", "12:00")
	b := mustResolve(t, "2025-12-08", "12:00", "16:00")

	if (LinearScan{}).HasConflict(a, []Interval{b}) {
		t.Fatal("back-to-back shifts must not conflict")
	}
}

func TestHasConflictOverlap(t *testing.T) {
	a := mustResolve(t, "2025-12-08", "08:00", "13:00")
	b := mustResolve(t, "2025-12-08", "12:00", "16:00")

	if !(LinearScan{}).HasConflict(a, []Interval{b}) {
		t.Fatal("overlapping shifts must conflict")
	}
}

func TestHasConflictOvernightOverlap(t *testing.T) {
	// Overnight shift from the 8th spills into the morning of the 9th
	overnight := mustResolve(t, "2025-12-08", "20:00", "06:00")
	morning := mustResolve(t, "2025-12-09", "05:00", "13:00")

	if !(LinearScan{}).HasConflict(morning, []Interval{overnight}) {
		t.Fatal("overnight spill-over must conflict with next morning shift")
	}
}

func TestHasConflictEmptyExisting(t *testing.T) {
	a := mustResolve(t, "2025-12-08", "08:00", "12:00")

	if (LinearScan{}).HasConflict(a, nil) {
		t.Fatal("no existing shifts means no conflict")
	}
}

func TestCheckMissionConflicts(t *testing.T) {
	existing := []models.Mission{
		makeMission("m1", "Marina Baie des Anges", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "13:00"}),
	}

	candidate := makeMission("m2", "Port Vauban", "agent-1", "Jean Dupont",
		models.Vacation{Date: "2025-12-08", Start: "12:00", End: "16:00"})

	conflict, err := CheckMissionConflicts(existing, &candidate, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict == nil {
		t.Fatal("expected a conflict")
	}
	if conflict.AgentName != "Jean Dupont" || conflict.Date != "2025-12-08" {
		t.Fatalf("conflict should name agent and date, got %+v", conflict)
	}
	if conflict.MissionID != "m1" {
		t.Fatalf("expected conflicting mission m1, got %s", conflict.MissionID)
	}
}

func TestCheckMissionConflictsDifferentAgent(t *testing.T) {
	existing := []models.Mission{
		makeMission("m1", "Marina Baie des Anges", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "13:00"}),
	}

	// Same hours, different agent: not a conflict
	candidate := makeMission("m2", "Port Vauban", "agent-2", "Marie Martin",
		models.Vacation{Date: "2025-12-08", Start: "08:00", End: "13:00"})

	conflict, err := CheckMissionConflicts(existing, &candidate, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Fatalf("expected no conflict, got %+v", conflict)
	}
}

func TestCheckMissionConflictsExcludesEditedMission(t *testing.T) {
	existing := []models.Mission{
		makeMission("m1", "Marina Baie des Anges", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "13:00"}),
	}

	// Editing m1 in place: its stored copy must not conflict with itself
	candidate := makeMission("m1", "Marina Baie des Anges", "agent-1", "Jean Dupont",
		models.Vacation{Date: "2025-12-08", Start: "09:00", End: "14:00"})

	conflict, err := CheckMissionConflicts(existing, &candidate, "m1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Fatalf("edited mission must be excluded, got %+v", conflict)
	}
}

func TestCheckMissionConflictsBackToBackAllowed(t *testing.T) {
	existing := []models.Mission{
		makeMission("m1", "Marina Baie des Anges", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "12:00"}),
	}

	candidate := makeMission("m2", "Port Vauban", "agent-1", "Jean Dupont",
		models.Vacation{Date: "2025-12-08", Start: "12:00", End: "16:00"})

	conflict, err := CheckMissionConflicts(existing, &candidate, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Fatalf("back-to-back shifts must be allowed, got %+v", conflict)
	}
}

func TestCheckMissionConflictsMalformedVacation(t *testing.T) {
	existing := []models.Mission{
		makeMission("m1", "Marina Baie des Anges", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "13:00"}),
	}

	candidate := makeMission("m2", "Port Vauban", "agent-1", "Jean Dupont",
		models.Vacation{Date: "not-a-date", Start: "08:00", End: "13:00"})

	_, err := CheckMissionConflicts(existing, &candidate, "", nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
