package engine

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Enqueuer is the only mutation capability collaborators receive.
type Enqueuer interface {
	Enqueue(events ...Event)
}

// Context is the read view handed to Strategy and Execution collaborators.
// State is a value copy; mutating it has no effect on the engine.
type Context struct {
	State     common.AccountState
	Params    RunParameters
	TimeStamp time.Time
	MarkPrice fixed.Point
	Rand      *utility.Rand

	enq Enqueuer
}

// Enqueue schedules events into the current run.
func (c Context) Enqueue(events ...Event) {
	c.enq.Enqueue(events...)
}
