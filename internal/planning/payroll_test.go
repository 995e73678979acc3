package planning

import (
	"errors"
	"testing"
	"time"

	"vigiplan-backend/internal/models"
)

func refTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("parse reference time %q: %v", value, err)
	}
	return ts
}

func TestSummarizeStandardHours(t *testing.T) {
	missions := []models.Mission{
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "12:00"}),
	}

	s, err := Summarize("agent-1", missions, nil, refTime(t, "2025-12-08 00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeTo(s.TotalPlanned, 4) {
		t.Fatalf("expected 4 planned hours, got %v", s.TotalPlanned)
	}
	if !closeTo(s.NightHours, 0) {
		t.Fatalf("expected no night hours, got %v", s.NightHours)
	}
}

func TestSummarizeNightHours(t *testing.T) {
	missions := []models.Mission{
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "20:00", End: "06:00"}),
	}

	s, err := Summarize("agent-1", missions, nil, refTime(t, "2025-12-08 00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeTo(s.TotalPlanned, 10) || !closeTo(s.NightHours, 9) {
		t.Fatalf("expected 10h planned / 9h night, got %+v", s)
	}
}

func TestSummarizeDoneFutureSplit(t *testing.T) {
	missions := []models.Mission{
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-01", Start: "08:00", End: "12:00"}, // past
			models.Vacation{Date: "2025-12-30", Start: "08:00", End: "12:00"}, // future
		),
	}

	s, err := Summarize("agent-1", missions, nil, refTime(t, "2025-12-15 00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeTo(s.TotalDone, 4) {
		t.Fatalf("expected 4h done, got %v", s.TotalDone)
	}
	if !closeTo(s.FutureHours, 4) {
		t.Fatalf("expected 4h future, got %v", s.FutureHours)
	}
	if s.TotalPlanned != s.TotalDone+s.FutureHours {
		t.Fatalf("planned invariant broken: %v != %v + %v", s.TotalPlanned, s.TotalDone, s.FutureHours)
	}
}

func TestSummarizeEndExactlyAtReferenceIsDone(t *testing.T) {
	missions := []models.Mission{
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "12:00"}),
	}

	s, err := Summarize("agent-1", missions, nil, refTime(t, "2025-12-08 12:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeTo(s.TotalDone, 4) || !closeTo(s.FutureHours, 0) {
		t.Fatalf("shift ending at the reference instant counts as done, got %+v", s)
	}
}

func TestSummarizeMergesCalendarEvents(t *testing.T) {
	missions := []models.Mission{
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "12:00"}),
	}
	events := []models.PlanningEvent{
		{
			ID: "evt-1", Title: "Ronde de nuit", AgentID: "agent-1", AgentName: "Jean Dupont",
			StartsAt: refTime(t, "2025-12-09 20:00").Unix(),
			EndsAt:   refTime(t, "2025-12-10 06:00").Unix(),
		},
		{
			// Different agent, must be ignored
			ID: "evt-2", Title: "Gardiennage", AgentID: "agent-2", AgentName: "Marie Martin",
			StartsAt: refTime(t, "2025-12-09 08:00").Unix(),
			EndsAt:   refTime(t, "2025-12-09 18:00").Unix(),
		},
	}

	s, err := Summarize("agent-1", missions, events, refTime(t, "2025-12-09 00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeTo(s.TotalPlanned, 14) {
		t.Fatalf("expected 4h mission + 10h event = 14h, got %v", s.TotalPlanned)
	}
	if !closeTo(s.NightHours, 9) {
		t.Fatalf("expected 9 night hours from the event, got %v", s.NightHours)
	}
	if !closeTo(s.TotalDone, 4) || !closeTo(s.FutureHours, 10) {
		t.Fatalf("expected 4h done / 10h future, got %+v", s)
	}
}

func TestSummarizeRejectsOversizedEvent(t *testing.T) {
	events := []models.PlanningEvent{
		{
			ID: "evt-1", AgentID: "agent-1",
			StartsAt: refTime(t, "2025-12-09 08:00").Unix(),
			EndsAt:   refTime(t, "2025-12-10 09:00").Unix(), // 25h
		},
	}

	_, err := Summarize("agent-1", nil, events, refTime(t, "2025-12-09 00:00"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for >24h event, got %v", err)
	}
}

func TestSummarizeUnknownAgentIsZero(t *testing.T) {
	missions := []models.Mission{
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-08", Start: "08:00", End: "12:00"}),
	}

	s, err := Summarize("agent-unknown", missions, nil, refTime(t, "2025-12-08 00:00"))
	if err != nil {
		t.Fatalf("unknown agent must not be an error: %v", err)
	}
	if s.TotalPlanned != 0 || s.TotalDone != 0 || s.FutureHours != 0 {
		t.Fatalf("unknown agent must contribute zero, got %+v", s)
	}
}

func TestSummarizeIsDeterministic(t *testing.T) {
	missions := []models.Mission{
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-06", Start: "22:00", End: "06:00"},
			models.Vacation{Date: "2025-12-07", Start: "08:00", End: "18:00"},
		),
		makeMission("m2", "Marina Baie des Anges", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-25", Start: "08:00", End: "12:00"},
		),
	}
	now := refTime(t, "2025-12-10 00:00")

	a, err := Summarize("agent-1", missions, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Summarize("agent-1", missions, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("identical inputs summarized differently: %+v vs %+v", a, b)
	}
	if a.TotalPlanned != a.TotalDone+a.FutureHours {
		t.Fatalf("planned invariant broken: %+v", a)
	}
}

func TestComputeMissionStats(t *testing.T) {
	missions := []models.Mission{
		// Fully in the past
		makeMission("m1", "Port Vauban", "agent-1", "Jean Dupont",
			models.Vacation{Date: "2025-12-01", Start: "08:00", End: "16:00"}),
		// Upcoming
		makeMission("m2", "Marina Baie des Anges", "agent-2", "Marie Martin",
			models.Vacation{Date: "2025-12-20", Start: "08:00", End: "18:00"}),
	}

	stats, err := ComputeMissionStats(missions, refTime(t, "2025-12-10 00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeTo(stats.DoneHours, 8) || !closeTo(stats.FutureHours, 10) {
		t.Fatalf("expected 8h done / 10h future, got %+v", stats)
	}
	if !closeTo(stats.TotalHours, 18) {
		t.Fatalf("expected 18h total, got %v", stats.TotalHours)
	}
	// Only the upcoming mission keeps an agent and a site active
	if stats.AgentsCount != 1 || stats.SitesCount != 1 {
		t.Fatalf("expected 1 active agent and site, got %+v", stats)
	}
}
