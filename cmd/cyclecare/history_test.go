package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/cyclecare/internal/record"
)

func seedStore(t *testing.T, dir string) {
	t.Helper()
	store, err := record.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	seed := []*record.Assessment{
		{ID: "a1", UserID: 1, Type: "menstrual", Score: 30,
			Recommendations: []string{"Your menstrual health needs attention."}, CreatedAt: base},
		{ID: "a2", UserID: 1, Type: "mental", Score: 70,
			Recommendations: []string{"Good mental wellness with room for improvement."}, CreatedAt: base.Add(24 * time.Hour)},
		{ID: "a3", UserID: 2, Type: "mental", Score: 100,
			Recommendations: []string{"Excellent mental wellness!"}, CreatedAt: base},
	}
	for _, a := range seed {
		if err := store.Create(a); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunHistoryJSON(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir)

	f := &historyFlags{userID: 1, format: "json", dataDir: dir, logLevel: "info", logFormat: "text"}
	var stdout bytes.Buffer
	if err := runHistory(f, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	var list []record.Assessment
	if err := json.Unmarshal(stdout.Bytes(), &list); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a2" || list[1].ID != "a1" {
		t.Errorf("unexpected history: %+v", list)
	}
}

func TestRunHistoryTypeFilterMarkdown(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir)

	f := &historyFlags{userID: 1, typ: "Mental", format: "md", dataDir: dir, logLevel: "info", logFormat: "text"}
	var stdout bytes.Buffer
	if err := runHistory(f, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	md := stdout.String()
	if !strings.Contains(md, "| 2024-04-02 | mental | 70 |") {
		t.Errorf("missing mental row:\n%s", md)
	}
	if strings.Contains(md, "menstrual") {
		t.Errorf("type filter not applied:\n%s", md)
	}
}

func TestRunHistoryEmptyUser(t *testing.T) {
	dir := t.TempDir()
	f := &historyFlags{userID: 99, format: "json", dataDir: dir, logLevel: "info", logFormat: "text"}
	var stdout bytes.Buffer
	if err := runHistory(f, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout.String()) != "[]" {
		t.Errorf("expected empty array, got %q", stdout.String())
	}
}

func TestRunHistoryReportsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	userDir := filepath.Join(dir, "1")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	bad := `{"id": "broken", "user_id": 1, "type": "mental", "score": 140, "recommendations": [], "created_at": "2024-01-01T00:00:00Z"}`
	if err := os.WriteFile(filepath.Join(userDir, "broken.json"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	f := &historyFlags{userID: 1, format: "json", dataDir: dir, logLevel: "info", logFormat: "text"}
	var stdout, stderr bytes.Buffer
	if err := runHistory(f, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "failed validation") {
		t.Errorf("expected validation warning, got:\n%s", stderr.String())
	}
	// Shown as stored, never rescored.
	if !strings.Contains(stdout.String(), `"score": 140`) {
		t.Errorf("stored score changed:\n%s", stdout.String())
	}
}

func TestRunHistorySkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	seedStore(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "1", "zz.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	f := &historyFlags{userID: 1, format: "json", dataDir: dir, logLevel: "info", logFormat: "text"}
	var stdout, stderr bytes.Buffer
	if err := runHistory(f, &stdout, &stderr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var list []record.Assessment
	if err := json.Unmarshal(stdout.Bytes(), &list); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(list) != 2 || list[0].ID != "a2" || list[1].ID != "a1" {
		t.Errorf("unexpected history: %+v", list)
	}
	if !strings.Contains(stderr.String(), "skipped unreadable assessment") || !strings.Contains(stderr.String(), "zz.json") {
		t.Errorf("expected skip warning, got:\n%s", stderr.String())
	}
}

func TestRunHistoryBadFlags(t *testing.T) {
	dir := t.TempDir()
	err := runHistory(&historyFlags{format: "json", dataDir: dir}, &bytes.Buffer{}, &bytes.Buffer{})
	requireExit(t, err, 3)

	err = runHistory(&historyFlags{userID: 1, format: "csv", dataDir: dir}, &bytes.Buffer{}, &bytes.Buffer{})
	requireExit(t, err, 3)
}

func TestRunRules(t *testing.T) {
	var stdout bytes.Buffer
	if err := runRules("", &stdout); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"hygiene", "menstrual", "mental", "nutrition", "max deduction 70"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("rules list missing %q", want)
		}
	}

	stdout.Reset()
	if err := runRules("Nutrition", &stdout); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Ruleset: nutrition") {
		t.Errorf("unexpected description:\n%s", stdout.String())
	}

	requireExit(t, runRules("sleep", &bytes.Buffer{}), 3)
}
