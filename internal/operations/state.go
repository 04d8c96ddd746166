package operations

import (
	"sync"
	"time"

	"noshowcli/internal/dataprocessing"
)

// OperationStatusValue represents the overall run status
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// OperationState represents the complete state of a cleaning run
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Source    string               `json:"source"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`

	Steps map[string]*StepState `json:"steps"`

	// dataset is shared by every step of the run
	dataset *dataprocessing.Dataset

	Error error `json:"error,omitempty"`
}

// NewOperationState creates a new run state reading from source
func NewOperationState(id, source string) *OperationState {
	return &OperationState{
		ID:        id,
		Source:    source,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
	}
}

// Start marks the run as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the run as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the run as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the run as cancelled
func (p *OperationState) Cancel(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
	p.Error = err
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stepID]
}

// SetStage updates the state of a specific Step
func (p *OperationState) SetStage(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps[stepID] = state
}

// Dataset returns the dataset loaded by the run, nil before loading
func (p *OperationState) Dataset() *dataprocessing.Dataset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dataset
}

// SetDataset stores the dataset the following steps work on
func (p *OperationState) SetDataset(ds *dataprocessing.Dataset) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dataset = ds
}

// Rows returns the current record count, zero before loading
func (p *OperationState) Rows() int {
	ds := p.Dataset()
	if ds == nil {
		return 0
	}
	return ds.Len()
}

// ensureStage returns the state of a Step, creating it when the Step runs
// outside a pipeline
func (p *OperationState) ensureStage(stepID, name string) *StepState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.Steps[stepID]
	if !ok {
		s = NewStepState(stepID, name)
		p.Steps[stepID] = s
	}
	return s
}
