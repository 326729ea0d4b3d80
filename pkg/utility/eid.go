package utility

import (
	"sync"

	"github.com/google/uuid"
)

// ExecutionID identifies one process-level run in logs. It is never embedded
// in replay output, which must stay byte-identical across runs.
type ExecutionID = uuid.UUID

var (
	executionID   ExecutionID
	executionIDMu sync.RWMutex
)

func GetExecutionID() ExecutionID {
	executionIDMu.RLock()
	if executionID != uuid.Nil {
		defer executionIDMu.RUnlock()
		return executionID
	}
	executionIDMu.RUnlock()
	return ResetExecutionID()
}

func ResetExecutionID() ExecutionID {
	executionIDMu.Lock()
	defer executionIDMu.Unlock()

	executionID = uuid.Must(uuid.NewV7())
	return executionID
}
