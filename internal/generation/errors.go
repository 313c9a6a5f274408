package generation

import (
	"errors"
	"fmt"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

var (
	// ErrStageFailed means an external worker wrote the "error" sentinel into a status field
	ErrStageFailed = errors.New("stage failed")

	// ErrStageTimedOut means a status field did not reach its expected value in time
	ErrStageTimedOut = errors.New("stage timed out")

	// ErrStoreUnavailable means the record could not be read or written
	ErrStoreUnavailable = store.ErrUnavailable

	ErrValidation = model.ErrValidation
)

// StageError is the failure of a single field wait or write
type StageError struct {
	Field string
	Kind  error // ErrStageFailed, ErrStageTimedOut or ErrStoreUnavailable
	Cause error
}

func (e *StageError) Error() string {
	stage := model.StageName(e.Field)
	switch e.Kind {
	case ErrStageFailed:
		return fmt.Sprintf("Error in %s generation.", stage)
	case ErrStageTimedOut:
		return fmt.Sprintf("%s generation timed out.", stage)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", stage, e.Cause)
	}
	return fmt.Sprintf("%s: %v", stage, e.Kind)
}

func (e *StageError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// GenerationFailure aborts a run and names the stage that stopped it
type GenerationFailure struct {
	CampaignID string
	Stage      string // registry stage name, e.g. "images"
	Field      string // status field, e.g. "images_status"
	Err        error
}

func (e *GenerationFailure) Error() string {
	return e.Err.Error()
}

func (e *GenerationFailure) Unwrap() error {
	return e.Err
}

func stageFailed(field string) error {
	return &StageError{Field: field, Kind: ErrStageFailed}
}

func stageTimedOut(field string) error {
	return &StageError{Field: field, Kind: ErrStageTimedOut}
}

func storeUnavailable(field string, cause error) error {
	return &StageError{Field: field, Kind: ErrStoreUnavailable, Cause: cause}
}
