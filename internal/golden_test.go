package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dshills/cyclecare/internal/assessment"
	"github.com/dshills/cyclecare/internal/record"
	"github.com/dshills/cyclecare/internal/schema"
	"github.com/dshills/cyclecare/internal/submission"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

func TestGoldenSubmissions(t *testing.T) {
	root := projectRoot()
	paths, err := filepath.Glob(filepath.Join(root, "testdata", "submissions", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden submissions found")
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t.Run(name, func(t *testing.T) {
			sub, err := submission.Load(path)
			if err != nil {
				t.Fatalf("load submission: %v", err)
			}

			goldenData, err := os.ReadFile(filepath.Join(root, "testdata", "golden", name+".json"))
			if err != nil {
				t.Fatalf("failed to read golden file: %v", err)
			}
			var want assessment.Result
			if err := json.Unmarshal(goldenData, &want); err != nil {
				t.Fatalf("failed to parse golden JSON: %v", err)
			}

			got := assessment.Evaluate(sub.Type, sub.Responses)
			if got.Score != want.Score {
				t.Errorf("score = %d, want %d", got.Score, want.Score)
			}
			if strings.Join(got.Recommendations, "\n") != strings.Join(want.Recommendations, "\n") {
				t.Errorf("recommendations =\n%q\nwant\n%q", got.Recommendations, want.Recommendations)
			}

			for _, e := range schema.ValidateResult(sub.Type, got) {
				t.Errorf("validation error: %s", e)
			}

			// Submitting and reading back returns the same frozen result.
			store, err := record.NewFileStore(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			a, err := record.Submit(store, record.Input{
				UserID: sub.UserID, Type: sub.Type, Responses: sub.Responses, Hash: sub.Hash,
			})
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			stored, err := store.Get(sub.UserID, a.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			for _, e := range schema.ValidateRecord(stored) {
				t.Errorf("record validation error: %s", e)
			}

			data1, err := json.MarshalIndent(stored.Result(), "", "  ")
			if err != nil {
				t.Fatal(err)
			}
			data2, err := json.MarshalIndent(got, "", "  ")
			if err != nil {
				t.Fatal(err)
			}
			if string(data1) != string(data2) {
				t.Errorf("stored result differs from evaluation:\n%s\nvs\n%s", data1, data2)
			}
		})
	}
}
