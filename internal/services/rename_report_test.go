package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestRenameSummaryRecord(t *testing.T) {
	productID := uuid.New()
	s := NewRenameSummary(productID)

	s.Record(RenameRenamed, uuid.New(), "a_1.jpg", "b_1.jpg", "")
	s.Record(RenameRenamed, uuid.New(), "a_2.jpg", "b_2.jpg", "")
	s.Record(RenameDBOnly, uuid.New(), "a_3.jpg", "b_3.jpg", "")
	s.Record(RenameUnchanged, uuid.New(), "b_4.jpg", "b_4.jpg", "")
	s.Record(RenameFailed, uuid.New(), "a_5.jpg", "b_5.jpg", "permission_denied")

	if s.RenamedCount != 2 {
		t.Fatalf("RenamedCount = %d, want 2", s.RenamedCount)
	}
	if s.DBOnlyCount != 1 {
		t.Fatalf("DBOnlyCount = %d, want 1", s.DBOnlyCount)
	}
	if s.UnchangedCount != 1 {
		t.Fatalf("UnchangedCount = %d, want 1", s.UnchangedCount)
	}
	if s.FailedCount != 1 || len(s.Failures) != 1 {
		t.Fatalf("FailedCount = %d, Failures = %d, want 1/1", s.FailedCount, len(s.Failures))
	}
	if s.Failures[0].Reason != "permission_denied" {
		t.Fatalf("failure reason = %q", s.Failures[0].Reason)
	}
}

func TestRenameSummaryClean(t *testing.T) {
	s := NewRenameSummary(uuid.New())
	if !s.Clean() {
		t.Fatal("empty summary should be clean")
	}
	if s.Touched() {
		t.Fatal("empty summary should not be touched")
	}

	// A db-only reconciliation is clean: name and catalog agree even though
	// the bytes never moved.
	s.Record(RenameDBOnly, uuid.New(), "a_1.jpg", "b_1.jpg", "")
	if !s.Clean() {
		t.Fatal("db-only summary should be clean")
	}
	if !s.Touched() {
		t.Fatal("db-only summary should be touched")
	}

	s.Record(RenameFailed, uuid.New(), "a_2.jpg", "b_2.jpg", "boom")
	if s.Clean() {
		t.Fatal("failed summary should not be clean")
	}

	warned := NewRenameSummary(uuid.New())
	warned.Warn("sku regeneration failed")
	if warned.Clean() {
		t.Fatal("warned summary should not be clean")
	}
}
