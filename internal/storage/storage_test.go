package storage

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	db, err := Open(filepath.Join(t.TempDir(), "docs.db"), log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadAbsentKey(t *testing.T) {
	db := openTest(t)
	var tasks []task.Task
	if db.Load(KeyTasks, &tasks) {
		t.Fatalf("missing key must read as absent")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTest(t)
	want := []task.Task{
		{ID: "a", Title: "first", Tags: []string{"x"}, Priority: task.PriorityUrgent},
		{ID: "b", Title: "second", Status: task.StatusCompleted, Completed: true},
	}
	if err := db.Save(KeyTasks, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got []task.Task
	if !db.Load(KeyTasks, &got) {
		t.Fatalf("saved document must load")
	}
	if len(got) != len(want) {
		t.Fatalf("length: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Title != want[i].Title || got[i].Completed != want[i].Completed {
			t.Fatalf("document %d differs: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	db := openTest(t)
	db.Save(KeyViewMode, "list")
	db.Save(KeyViewMode, "grid")

	var mode string
	if !db.Load(KeyViewMode, &mode) || mode != "grid" {
		t.Fatalf("want last write to win, got %q", mode)
	}
}

func TestLoadMalformedReadsAsAbsent(t *testing.T) {
	db := openTest(t)
	if _, err := db.db.Exec(
		`INSERT INTO documents (key, value) VALUES (?, ?);`, KeyTasks, "{not json"); err != nil {
		t.Fatalf("seed malformed row: %v", err)
	}

	var tasks []task.Task
	if db.Load(KeyTasks, &tasks) {
		t.Fatalf("malformed text must read as absent, not error")
	}
}

func TestDelete(t *testing.T) {
	db := openTest(t)
	db.Save(KeySettings, map[string]string{"theme": "dark"})
	if err := db.Delete(KeySettings); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var out map[string]string
	if db.Load(KeySettings, &out) {
		t.Fatalf("deleted key must read as absent")
	}
}
