package notifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/embedded"
	"go.uber.org/goleak"

	"github.com/clickrouter/notifier/signal"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTask struct {
	rescheduled int
}

func (f *fakeTask) Reschedule() { f.rescheduled++ }

func TestFastPathSingleTask(t *testing.T) {
	an := NewActiveNotifier(SearchContinue, nil)
	task := &fakeTask{}

	an.AddListener(task)
	require.Nil(t, an.listeners)
	require.Equal(t, task, an.listener1)
	assert.Equal(t, []Task{task}, an.Listeners())
}

func TestAddIdempotent(t *testing.T) {
	an := NewActiveNotifier(SearchContinue, nil)
	task := &fakeTask{}

	an.AddListener(task)
	an.AddListener(task)
	assert.Equal(t, []Task{task}, an.Listeners())

	an.RemoveListener(task)
	assert.Empty(t, an.Listeners())
	assert.Nil(t, an.listener1)
	assert.Nil(t, an.listeners)
}

func TestRemoveUnderFastPathLeavesNoHeapArray(t *testing.T) {
	an := NewActiveNotifier(SearchContinue, nil)
	task := &fakeTask{}

	an.AddListener(task)
	an.RemoveListener(task)

	assert.Nil(t, an.listener1)
	assert.Nil(t, an.listeners)
}

func TestRemoveUnknownIsNoOp(t *testing.T) {
	an := NewActiveNotifier(SearchContinue, nil)
	task := &fakeTask{}
	other := &fakeTask{}

	an.AddListener(task)
	an.RemoveListener(other)

	assert.Equal(t, []Task{task}, an.Listeners())
}

func TestMultipleTasksPromoteToHeapArray(t *testing.T) {
	an := NewActiveNotifier(SearchContinue, nil)
	t1, t2, t3 := &fakeTask{}, &fakeTask{}, &fakeTask{}

	an.AddListener(t1)
	an.AddListener(t2)
	an.AddListener(t3)

	require.NotNil(t, an.listeners)
	got := an.Listeners()
	assert.ElementsMatch(t, []Task{t1, t2, t3}, got)

	an.RemoveListener(t2)
	assert.ElementsMatch(t, []Task{t1, t3}, an.Listeners())
}

func TestWakeReschedulesFastPathListener(t *testing.T) {
	an := NewActiveNotifier(SearchContinue, nil)
	require.NoError(t, an.Initialize(&fakeRouter{word: signal.NewSignalWord()}))
	task := &fakeTask{}
	an.AddListener(task)

	an.SetActive()
	assert.Equal(t, 1, task.rescheduled)

	// already active: no further transition, no further reschedule.
	an.SetActive()
	assert.Equal(t, 1, task.rescheduled)

	an.SetInactive()
	an.SetActive()
	assert.Equal(t, 2, task.rescheduled)
}

func TestWakeReschedulesEveryHeapListener(t *testing.T) {
	an := NewActiveNotifier(SearchContinue, nil)
	require.NoError(t, an.Initialize(&fakeRouter{word: signal.NewSignalWord()}))
	t1, t2 := &fakeTask{}, &fakeTask{}
	an.AddListener(t1)
	an.AddListener(t2)

	an.SetActive()
	assert.Equal(t, 1, t1.rescheduled)
	assert.Equal(t, 1, t2.rescheduled)
}

func TestDependentCascade(t *testing.T) {
	router := &fakeRouter{word: signal.NewSignalWord()}
	a := NewActiveNotifier(SearchContinue, nil)
	defer a.Close()
	require.NoError(t, a.Initialize(router))
	b := NewActiveNotifier(SearchContinue, nil)
	defer b.Close()
	require.NoError(t, b.Initialize(router))
	task := &fakeTask{}
	b.AddListener(task)

	a.AddDependentSignal(b.SignalPtr())

	a.SetActive()
	assert.True(t, b.Signal().Active())
	assert.Equal(t, 1, task.rescheduled)
}

func TestAddDependentSignalToBareSignalDoesNotCascadeFurther(t *testing.T) {
	a := NewActiveNotifier(SearchContinue, nil)
	defer a.Close()
	require.NoError(t, a.Initialize(&fakeRouter{word: signal.NewSignalWord()}))

	word := signal.NewSignalWord()
	bare := signal.FromWord(word, 1)

	a.AddDependentSignal(&bare)
	require.NotPanics(t, func() { a.SetActive() })
	assert.True(t, bare.Active())
}

func TestSearchOpString(t *testing.T) {
	assert.Equal(t, "stop", SearchStop.String())
	assert.Equal(t, "continue", SearchContinue.String())
	assert.Equal(t, "continue-wake", SearchContinueWake.String())
}

type fakeRouter struct {
	word  *signal.SignalWord
	calls int
}

func (r *fakeRouter) NewBasicSignal() (signal.Signal, error) {
	r.calls++
	return signal.FromWord(r.word, 1<<uint(r.calls-1)), nil
}

func TestInitializeIsIdempotent(t *testing.T) {
	base := NewBase(SearchContinue)
	router := &fakeRouter{word: signal.NewSignalWord()}

	require.NoError(t, base.Initialize(router))
	require.NoError(t, base.Initialize(router))
	assert.Equal(t, 1, router.calls)
	assert.True(t, base.Signal().Initialized())
}

// countingCounter is a minimal metric.Int64Counter that just tallies Add
// calls, for asserting that wake() actually reports reschedules once one
// is wired in via SetReschedulesCounter.
type countingCounter struct {
	embedded.Int64Counter
	total int64
}

func (c *countingCounter) Add(_ context.Context, incr int64, _ ...metric.AddOption) {
	c.total += incr
}

func TestSetReschedulesCounterCountsEachWake(t *testing.T) {
	an := NewActiveNotifier(SearchStop, nil)
	router := &fakeRouter{word: signal.NewSignalWord()}
	require.NoError(t, an.Initialize(router))

	counter := &countingCounter{}
	an.SetReschedulesCounter(counter)

	task := &fakeTask{}
	an.AddListener(task)

	an.SetActive()
	assert.Equal(t, int64(1), counter.total)

	an.SetInactive()
	an.SetActive()
	assert.Equal(t, int64(2), counter.total)
}
