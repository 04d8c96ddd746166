package operations

import (
	"context"
	"fmt"

	"noshowcli/internal/dataprocessing"
	"noshowcli/pkg/contracts/domain"
)

// LoadStage reads the source file into the run's dataset
type LoadStage struct {
	BaseStage
	parser *dataprocessing.Parser
}

// NewLoadStage creates the load step
func NewLoadStage(parser *dataprocessing.Parser) *LoadStage {
	return &LoadStage{
		BaseStage: NewBaseStage(StepIDLoad, StepNameLoad),
		parser:    parser,
	}
}

// Execute loads state.Source
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	ds, err := s.parser.ParseFile(ctx, state.Source)
	if err != nil {
		return err
	}
	state.SetDataset(ds)
	return nil
}

// DeduplicateStage removes records identical to an earlier record
type DeduplicateStage struct {
	BaseStage
}

// NewDeduplicateStage creates the deduplicate step
func NewDeduplicateStage() *DeduplicateStage {
	return &DeduplicateStage{BaseStage: NewBaseStage(StepIDDeduplicate, StepNameDeduplicate)}
}

// Execute removes duplicate records
func (s *DeduplicateStage) Execute(ctx context.Context, state *OperationState) error {
	ds, err := requireDataset(s.ID(), state)
	if err != nil {
		return err
	}
	removed := ds.Deduplicate()
	state.ensureStage(s.ID(), s.Name()).SetMessage(fmt.Sprintf("removed %d duplicate records", removed))
	return nil
}

// NormalizeTimestampsStage parses the timestamp columns into UTC times
type NormalizeTimestampsStage struct {
	BaseStage
	columns []string
	policy  domain.TimestampPolicy
}

// NewNormalizeTimestampsStage creates the timestamp step for columns
func NewNormalizeTimestampsStage(columns []string, policy domain.TimestampPolicy) *NormalizeTimestampsStage {
	return &NormalizeTimestampsStage{
		BaseStage: NewBaseStage(StepIDNormalizeTimestamps, StepNameNormalizeTimestamps),
		columns:   columns,
		policy:    policy,
	}
}

// Execute normalizes every configured column
func (s *NormalizeTimestampsStage) Execute(ctx context.Context, state *OperationState) error {
	ds, err := requireDataset(s.ID(), state)
	if err != nil {
		return err
	}
	dropped, err := ds.NormalizeTimestamps(s.columns, s.policy)
	if err != nil {
		return err
	}
	stepState := state.ensureStage(s.ID(), s.Name())
	stepState.SetMetadata("policy", string(s.policy))
	stepState.SetMessage(fmt.Sprintf("dropped %d records with malformed timestamps", dropped))
	return nil
}

// RenameColumnStage renames one column
type RenameColumnStage struct {
	BaseStage
	from, to string
}

// NewRenameColumnStage creates the rename step
func NewRenameColumnStage(from, to string) *RenameColumnStage {
	return &RenameColumnStage{
		BaseStage: NewBaseStage(StepIDRenameColumns, StepNameRenameColumns),
		from:      from,
		to:        to,
	}
}

// Execute renames the column; an already renamed dataset is left alone
func (s *RenameColumnStage) Execute(ctx context.Context, state *OperationState) error {
	ds, err := requireDataset(s.ID(), state)
	if err != nil {
		return err
	}
	renamed, err := ds.RenameColumn(s.from, s.to)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("renamed %s to %s", s.from, s.to)
	if !renamed {
		msg = fmt.Sprintf("%s already present", s.to)
	}
	state.ensureStage(s.ID(), s.Name()).SetMessage(msg)
	return nil
}

// ValidateAgeStage drops records with a negative age
type ValidateAgeStage struct {
	BaseStage
	column string
}

// NewValidateAgeStage creates the age validation step
func NewValidateAgeStage(column string) *ValidateAgeStage {
	return &ValidateAgeStage{
		BaseStage: NewBaseStage(StepIDValidateAge, StepNameValidateAge),
		column:    column,
	}
}

// Execute removes records whose age is below zero
func (s *ValidateAgeStage) Execute(ctx context.Context, state *OperationState) error {
	ds, err := requireDataset(s.ID(), state)
	if err != nil {
		return err
	}
	removed, err := ds.DropNegative(s.column)
	if err != nil {
		return err
	}
	state.ensureStage(s.ID(), s.Name()).SetMessage(fmt.Sprintf("removed %d records with %s < 0", removed, s.column))
	return nil
}

func requireDataset(stepID string, state *OperationState) (*dataprocessing.Dataset, error) {
	ds := state.Dataset()
	if ds == nil {
		return nil, NewInvalidStateError(stepID, "no dataset loaded")
	}
	return ds, nil
}
