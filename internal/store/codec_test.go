package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	tasks, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tasks)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	created := time.Date(2024, 5, 4, 10, 30, 0, 123000000, time.UTC)
	in := []Task{
		{ID: 3, Description: "third first", Status: StatusDone, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
		{ID: 1, Description: "quotes \"and\" ünïcode", Status: StatusTodo, CreatedAt: created, UpdatedAt: created},
		{ID: 9, Description: "busy", Status: StatusInProgress, CreatedAt: created, UpdatedAt: created.Add(time.Minute)},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d tasks, got %d", len(in), len(out))
	}
	for i := range in {
		a, b := in[i], out[i]
		if a.ID != b.ID || a.Description != b.Description || a.Status != b.Status ||
			!a.CreatedAt.Equal(b.CreatedAt) || !a.UpdatedAt.Equal(b.UpdatedAt) {
			t.Fatalf("task %d mismatch: expected %+v, got %+v", i, a, b)
		}
	}
}

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := Save(path, []Task{{ID: 1, Description: "Buy milk", Status: StatusTodo, CreatedAt: ts, UpdatedAt: ts}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "id": 1,
    "description": "Buy milk",
    "status": "todo",
    "createdAt": "2024-01-02T03:04:05Z",
    "updatedAt": "2024-01-02T03:04:05Z"
  }
]
`
	if string(b) != want {
		t.Fatalf("unexpected file content:\n%s", b)
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, _ := os.ReadFile(path)
	if strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("expected [], got %q", b)
	}
}

func TestSaveRejectsInvalidStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	err := Save(path, []Task{{ID: 1, Description: "a", Status: Status("paused")}})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file written, got %v", statErr)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	for i := 0; i < 3; i++ {
		if err := Save(path, []Task{{ID: 1, Description: "a", Status: StatusTodo}}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only tasks.json, got %d entries", len(entries))
	}
}

func TestLoadCorrupt(t *testing.T) {
	cases := map[string]string{
		"malformed":      "{not json",
		"object root":    `{"id": 1}`,
		"bad status":     `[{"id":1,"description":"a","status":"blocked"}]`,
		"duplicate id":   `[{"id":1,"description":"a","status":"todo"},{"id":1,"description":"b","status":"done"}]`,
		"zero id":        `[{"id":0,"description":"a","status":"todo"}]`,
		"no description": `[{"id":1,"description":" ","status":"todo"}]`,
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "tasks.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}

func TestLoadBlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tasks, err := Load(path)
	if err != nil || len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d (%v)", len(tasks), err)
	}
}
