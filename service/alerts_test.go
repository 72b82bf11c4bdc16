package service

import (
	"strings"
	"testing"
	"time"

	"securefinance-backend/models"

	"github.com/google/uuid"
)

func testClient(email string) *models.Client {
	c := &models.Client{
		ID:            uuid.New(),
		CompanyName:   "Bakkerij Jansen BV",
		ContactPerson: "Piet Jansen",
	}
	if email != "" {
		c.Email = &email
	}
	return c
}

func testCategory(name string) *models.DocumentCategory {
	return &models.DocumentCategory{
		ID:           uuid.New(),
		Name:         name,
		CategoryType: models.CategoryBTWQuarter,
		Year:         2025,
		IsActive:     true,
	}
}

func assignmentFor(client *models.Client, cat *models.DocumentCategory, deadline *time.Time) *models.ClientDocumentAssignment {
	return &models.ClientDocumentAssignment{
		ID:         uuid.New(),
		ClientID:   client.ID,
		CategoryID: cat.ID,
		Deadline:   deadline,
	}
}

func TestBuildClientAlertsNeverEmpty(t *testing.T) {
	client := testClient("piet@jansen.nl")
	now := time.Now()

	alerts := BuildClientAlerts(client, nil, nil, now)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly one alert for a fresh client, got %d", len(alerts))
	}
	if alerts[0].Kind != AlertSuccess {
		t.Errorf("expected success alert, got %s", alerts[0].Kind)
	}
	if !strings.Contains(alerts[0].Message, "Nieuwe klant") {
		t.Errorf("expected new-client wording, got %q", alerts[0].Message)
	}
}

func TestBuildClientAlertsAllClear(t *testing.T) {
	client := testClient("piet@jansen.nl")
	cat := testCategory("BTW Q3 2025")
	farOut := time.Now().Add(30 * 24 * time.Hour)
	assignments := []*models.ClientDocumentAssignment{
		assignmentFor(client, cat, &farOut),
	}

	alerts := BuildClientAlerts(client, assignments, []*models.DocumentCategory{cat}, time.Now())
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d: %v", len(alerts), alerts)
	}
	if alerts[0].Kind != AlertSuccess {
		t.Errorf("expected success alert, got %s", alerts[0].Kind)
	}
	if !strings.Contains(alerts[0].Message, "Alles op orde") {
		t.Errorf("expected all-clear wording, got %q", alerts[0].Message)
	}
}

func TestBuildClientAlertsOverdueSingular(t *testing.T) {
	client := testClient("piet@jansen.nl")
	cat := testCategory("BTW Q1")
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	assignments := []*models.ClientDocumentAssignment{
		assignmentFor(client, cat, &past),
	}

	alerts := BuildClientAlerts(client, assignments, []*models.DocumentCategory{cat}, now)
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	if alerts[0].Kind != AlertError {
		t.Errorf("expected error alert, got %s", alerts[0].Kind)
	}
	want := "1 deadline verstreken: BTW Q1"
	if alerts[0].Message != want {
		t.Errorf("expected %q, got %q", want, alerts[0].Message)
	}
}

func TestBuildClientAlertsOrderAndPlural(t *testing.T) {
	client := testClient("") // no contact email
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

	catA := testCategory("BTW Q1")
	catB := testCategory("Jaarrekening 2024")
	catC := testCategory("Loonadministratie april")
	catD := testCategory("BTW Q2")

	past := now.Add(-24 * time.Hour)
	longPast := now.Add(-30 * 24 * time.Hour)
	soon := now.Add(3 * 24 * time.Hour)

	assignments := []*models.ClientDocumentAssignment{
		assignmentFor(client, catA, &past),
		assignmentFor(client, catB, &longPast),
		assignmentFor(client, catC, &soon),
		assignmentFor(client, catD, nil),
	}
	categories := []*models.DocumentCategory{catA, catB, catC, catD}

	alerts := BuildClientAlerts(client, assignments, categories, now)
	if len(alerts) != 4 {
		t.Fatalf("expected 4 alerts, got %d: %v", len(alerts), alerts)
	}

	if alerts[0].Kind != AlertError {
		t.Errorf("alert 0: expected error, got %s", alerts[0].Kind)
	}
	if !strings.HasPrefix(alerts[0].Message, "2 deadlines verstreken") {
		t.Errorf("alert 0: expected plural overdue wording, got %q", alerts[0].Message)
	}
	if alerts[1].Kind != AlertWarning {
		t.Errorf("alert 1: expected warning, got %s", alerts[1].Kind)
	}
	if !strings.Contains(alerts[1].Message, "binnen 7 dagen") {
		t.Errorf("alert 1: expected upcoming wording, got %q", alerts[1].Message)
	}
	if alerts[2].Kind != AlertInfo || !strings.Contains(alerts[2].Message, "Geen deadline") {
		t.Errorf("alert 2: expected missing-deadline info, got %s %q", alerts[2].Kind, alerts[2].Message)
	}
	if alerts[3].Kind != AlertInfo || !strings.Contains(alerts[3].Message, "geen contactemail") {
		t.Errorf("alert 3: expected missing-email info, got %s %q", alerts[3].Kind, alerts[3].Message)
	}
}

func TestBuildClientAlertsDeletedCategoryStillCounted(t *testing.T) {
	client := testClient("piet@jansen.nl")
	known := testCategory("BTW Q1")
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)

	// Second assignment points at a category that no longer exists.
	orphan := &models.ClientDocumentAssignment{
		ID:         uuid.New(),
		ClientID:   client.ID,
		CategoryID: uuid.New(),
		Deadline:   &past,
	}
	assignments := []*models.ClientDocumentAssignment{
		assignmentFor(client, known, &past),
		orphan,
	}

	alerts := BuildClientAlerts(client, assignments, []*models.DocumentCategory{known}, now)
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	if !strings.HasPrefix(alerts[0].Message, "2 deadlines verstreken") {
		t.Errorf("count should include the orphaned assignment, got %q", alerts[0].Message)
	}
	if !strings.HasSuffix(alerts[0].Message, "BTW Q1") {
		t.Errorf("name list should only carry resolved names, got %q", alerts[0].Message)
	}
}

func TestDeadlineText(t *testing.T) {
	if got := DeadlineText(nil); got != "Geen deadline" {
		t.Errorf("nil deadline: expected %q, got %q", "Geen deadline", got)
	}

	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := DeadlineText(&d); got != "1 mei 2025" {
		t.Errorf("expected %q, got %q", "1 mei 2025", got)
	}

	d2 := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	if got := DeadlineText(&d2); got != "31 december 2024" {
		t.Errorf("expected %q, got %q", "31 december 2024", got)
	}
}
