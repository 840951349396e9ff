package services

import (
	"github.com/google/uuid"
)

// RenameOutcome is the per-picture verdict of a rename cascade.
type RenameOutcome string

const (
	// RenameUnchanged means the canonical name already matched; nothing moved.
	RenameUnchanged RenameOutcome = "unchanged"
	// RenameRenamed means the remote object moved and the row was reconciled.
	RenameRenamed RenameOutcome = "renamed"
	// RenameDBOnly means the remote object was missing, so only the stored
	// name was updated; the locator still points at the old path.
	RenameDBOnly RenameOutcome = "db_only"
	// RenameFailed means the remote move failed for any other reason and the
	// row was left untouched.
	RenameFailed RenameOutcome = "failed"
)

// RenameFailure records one picture the cascade could not rename.
type RenameFailure struct {
	PictureID uuid.UUID `json:"pictureId"`
	OldName   string    `json:"oldName"`
	NewName   string    `json:"newName"`
	Reason    string    `json:"reason"`
}

// RenameSummary aggregates the outcome of a full cascade over one product.
// It is accumulated incrementally; Record is the only mutation path.
type RenameSummary struct {
	ProductID          uuid.UUID       `json:"productId"`
	RenamedCount       int             `json:"renamedCount"`
	DBOnlyCount        int             `json:"dbOnlyCount"`
	FailedCount        int             `json:"failedCount"`
	UnchangedCount     int             `json:"unchangedCount"`
	RenamedVariantSKUs []string        `json:"renamedVariantSkus"`
	Failures           []RenameFailure `json:"failures,omitempty"`
	Warnings           []string        `json:"warnings,omitempty"`
}

func NewRenameSummary(productID uuid.UUID) *RenameSummary {
	return &RenameSummary{ProductID: productID}
}

func (s *RenameSummary) Record(outcome RenameOutcome, pictureID uuid.UUID, oldName, newName, reason string) {
	switch outcome {
	case RenameRenamed:
		s.RenamedCount++
	case RenameDBOnly:
		s.DBOnlyCount++
	case RenameFailed:
		s.FailedCount++
		s.Failures = append(s.Failures, RenameFailure{
			PictureID: pictureID,
			OldName:   oldName,
			NewName:   newName,
			Reason:    reason,
		})
	case RenameUnchanged:
		s.UnchangedCount++
	}
}

func (s *RenameSummary) RecordSKU(skuCode string) {
	s.RenamedVariantSKUs = append(s.RenamedVariantSKUs, skuCode)
}

func (s *RenameSummary) Warn(message string) {
	s.Warnings = append(s.Warnings, message)
}

// Clean reports whether every picture either renamed cleanly or was already
// canonical. Missing-remote reconciliations count as clean: the store and the
// catalog agree on the name even though the bytes never moved.
func (s *RenameSummary) Clean() bool {
	return s.FailedCount == 0 && len(s.Warnings) == 0
}

// Touched reports whether the cascade changed anything at all.
func (s *RenameSummary) Touched() bool {
	return s.RenamedCount > 0 || s.DBOnlyCount > 0
}
