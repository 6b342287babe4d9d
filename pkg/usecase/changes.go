package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/service/tracker"
)

// ChangeUseCase exposes resume change tracking, diffing, and revert
type ChangeUseCase struct {
	tracker *tracker.Service
}

// Track diffs two resume snapshots and records the detected changes. The
// returned list contains only the changes that were persisted.
func (uc *ChangeUseCase) Track(ctx context.Context, userID string, oldSnap, newSnap *model.Snapshot, sessionID, description string) ([]*model.ResumeChange, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot track changes")
	}
	if oldSnap == nil || newSnap == nil {
		return nil, goerr.Wrap(ErrInvalidSnapshot, "both old and new resume snapshots are required",
			goerr.V("userID", userID),
		)
	}
	return uc.tracker.Track(ctx, userID, oldSnap, newSnap, sessionID, description), nil
}

// History lists the user's recorded changes, newest first. changeType and
// sessionID are optional filters; an unknown changeType is a validation error.
func (uc *ChangeUseCase) History(ctx context.Context, userID, sessionID, changeType string, limit int) ([]*model.ResumeChange, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot list change history")
	}

	var filter types.ChangeType
	if changeType != "" {
		parsed, err := types.ParseChangeType(changeType)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidChangeType, "bad change type filter",
				goerr.V("changeType", changeType),
			)
		}
		filter = parsed
	}
	return uc.tracker.History(ctx, userID, sessionID, filter, limit), nil
}

// Diff returns the detailed diff of one recorded change
func (uc *ChangeUseCase) Diff(ctx context.Context, changeID model.ChangeID) (*model.ChangeDiff, error) {
	diff := uc.tracker.Diff(ctx, changeID)
	if diff == nil {
		return nil, goerr.Wrap(ErrChangeNotFound, "cannot diff change",
			goerr.V("changeID", changeID),
		)
	}
	return diff, nil
}

// Revert records the reversal of a change and returns the data the caller
// should write back. It fails when the change is missing or owned by another
// user; a revert must never silently no-op.
func (uc *ChangeUseCase) Revert(ctx context.Context, userID string, changeID model.ChangeID) (*model.RevertData, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot revert change")
	}
	ok, data := uc.tracker.Revert(ctx, userID, changeID)
	if !ok {
		return nil, goerr.Wrap(ErrRevertRejected, "change is missing or not owned by user",
			goerr.V("userID", userID),
			goerr.V("changeID", changeID),
		)
	}
	return data, nil
}
