package tracing

import (
	"sync"

	"github.com/sarchlab/dmacsim/datarecording"
	"github.com/sarchlab/dmacsim/sim"
)

// taskEntry is the flattened form of a task that is written to the recorder.
// The task's Where field is stored in the Location column, as WHERE is a
// reserved word in SQL.
type taskEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

// A RecorderTracer timestamps tasks and stores the completed ones through a
// DataRecorder.
type RecorderTracer struct {
	sync.Mutex

	timeTeller sim.TimeTeller
	recorder   datarecording.DataRecorder

	inflight map[string]Task
}

// NewRecorderTracer creates a RecorderTracer that writes into the "trace"
// table of the given recorder.
func NewRecorderTracer(
	recorder datarecording.DataRecorder,
	timeTeller sim.TimeTeller,
) *RecorderTracer {
	t := &RecorderTracer{
		timeTeller: timeTeller,
		recorder:   recorder,
		inflight:   make(map[string]Task),
	}

	recorder.CreateTable("trace", taskEntry{})

	return t
}

// StartTask marks the start of a task.
func (t *RecorderTracer) StartTask(task Task) {
	task.StartTime = t.timeTeller.CurrentTime()

	t.Lock()
	defer t.Unlock()

	t.inflight[task.ID] = task
}

// StepTask does nothing for now
func (t *RecorderTracer) StepTask(_ Task) {
	// Do nothing
}

// EndTask writes the task into the recorder.
func (t *RecorderTracer) EndTask(task Task) {
	t.Lock()
	defer t.Unlock()

	originalTask, ok := t.inflight[task.ID]
	if !ok {
		return
	}

	originalTask.EndTime = t.timeTeller.CurrentTime()
	delete(t.inflight, task.ID)

	t.recorder.InsertData("trace", taskEntry{
		ID:        originalTask.ID,
		ParentID:  originalTask.ParentID,
		Kind:      originalTask.Kind,
		What:      originalTask.What,
		Location:  originalTask.Where,
		StartTime: float64(originalTask.StartTime),
		EndTime:   float64(originalTask.EndTime),
	})
}

// Handle terminates the tasks that are still running when the simulation
// ends and flushes the recorder.
func (t *RecorderTracer) Handle(now sim.VTimeInSec) {
	t.Lock()
	defer t.Unlock()

	for id, task := range t.inflight {
		t.recorder.InsertData("trace", taskEntry{
			ID:        task.ID,
			ParentID:  task.ParentID,
			Kind:      task.Kind,
			What:      task.What,
			Location:  task.Where,
			StartTime: float64(task.StartTime),
			EndTime:   float64(now),
		})
		delete(t.inflight, id)
	}

	t.recorder.Flush()
}
