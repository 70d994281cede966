package router

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/clickrouter/notifier/config"
	"github.com/clickrouter/notifier/errors"
	"github.com/clickrouter/notifier/notifier"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTask struct {
	rescheduled int
}

func (f *fakeTask) Reschedule() { f.rescheduled++ }

func flowKey(isOutput bool, port int) [2]int {
	o := 0
	if isOutput {
		o = 1
	}
	return [2]int{o, port}
}

type testElement struct {
	id        ElementID
	name      string
	notifiers map[string]notifier.Notifier
	active    map[[2]int]bool
	flow      map[[2]int][]bool
}

func newTestElement(name string) *testElement {
	return &testElement{
		id:        uuid.New(),
		name:      name,
		notifiers: make(map[string]notifier.Notifier),
		active:    make(map[[2]int]bool),
		flow:      make(map[[2]int][]bool),
	}
}

func (e *testElement) ID() ElementID { return e.id }
func (e *testElement) Name() string  { return e.name }

func (e *testElement) Cast(name string) notifier.Notifier {
	return e.notifiers[name]
}

func (e *testElement) PortActive(isOutput bool, port int) bool {
	return e.active[flowKey(isOutput, port)]
}

func (e *testElement) PortFlow(isOutput bool, port int) []bool {
	return e.flow[flowKey(isOutput, port)]
}

func TestUpstreamSearchFindsEmptyNotifierAndStops(t *testing.T) {
	r := New()
	source := newTestElement("source")
	queue := newTestElement("queue")
	sink := newTestElement("sink")

	emptyNotifier := notifier.NewBase(notifier.SearchStop)
	require.NoError(t, emptyNotifier.Initialize(r))
	queue.notifiers[notifier.EmptyNotifierName] = emptyNotifier

	r.Connect(source, 0, queue, 0)
	r.Connect(queue, 0, sink, 0)

	sig, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.True(t, sig.Initialized())
	assert.False(t, sig.Active())

	emptyNotifier.Signal().Activate()

	sig, err = r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.True(t, sig.Active())
}

func TestUpstreamSearchWithNothingReachableReturnsUninitialized(t *testing.T) {
	r := New()
	sink := newTestElement("sink")

	sig, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.False(t, sig.Initialized())
}

func TestBoundaryWithActivePushForcesBusy(t *testing.T) {
	r := New()
	source := newTestElement("source")
	boundary := newTestElement("boundary")
	sink := newTestElement("sink")

	r.Connect(source, 0, boundary, 0)
	r.Connect(boundary, 0, sink, 0)

	boundary.active[flowKey(true, 0)] = true
	boundary.flow[flowKey(true, 0)] = nil

	sig, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.True(t, sig.Active())
}

func TestBoundaryWithInactivePortStaysUninitialized(t *testing.T) {
	r := New()
	source := newTestElement("source")
	boundary := newTestElement("boundary")
	sink := newTestElement("sink")

	r.Connect(source, 0, boundary, 0)
	r.Connect(boundary, 0, sink, 0)
	// boundary.active defaults to false: a pull-side boundary carries no
	// implied busy signal.

	sig, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.False(t, sig.Initialized())
}

func TestContinueWakeTriggersSecondPass(t *testing.T) {
	r := New()
	source := newTestElement("source")
	limiter := newTestElement("limiter")
	sink := newTestElement("sink")

	sourceNotifier := notifier.NewBase(notifier.SearchStop)
	require.NoError(t, sourceNotifier.Initialize(r))
	sourceNotifier.Signal().Activate()
	source.notifiers[notifier.EmptyNotifierName] = sourceNotifier

	limiterNotifier := notifier.NewBase(notifier.SearchContinueWake)
	require.NoError(t, limiterNotifier.Initialize(r))
	limiter.notifiers[notifier.EmptyNotifierName] = limiterNotifier
	limiter.flow[flowKey(true, 0)] = []bool{true}

	r.Connect(source, 0, limiter, 0)
	r.Connect(limiter, 0, sink, 0)

	sig, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.True(t, sig.Active())
}

func TestUpstreamSearchRegistersListenerAndDependent(t *testing.T) {
	r := New()
	queue := newTestElement("queue")
	sink := newTestElement("sink")

	an := notifier.NewActiveNotifier(notifier.SearchStop, nil)
	defer an.Close()
	require.NoError(t, an.Initialize(r))
	queue.notifiers[notifier.EmptyNotifierName] = an

	r.Connect(queue, 0, sink, 0)

	task := &fakeTask{}
	dependent := notifier.NewActiveNotifier(notifier.SearchStop, nil)
	defer dependent.Close()
	require.NoError(t, dependent.Initialize(r))

	_, err := r.UpstreamSearch(sink, 0, task, dependent)
	require.NoError(t, err)

	an.SetActive()
	assert.Equal(t, 1, task.rescheduled)
	assert.True(t, dependent.Signal().Active())
}

func TestUpstreamSearchForcesBusyOnInitializeFailure(t *testing.T) {
	r := New(WithConfig(config.New(config.WithSignalWordWidth(2))))
	queue := newTestElement("queue")
	sink := newTestElement("sink")

	// Never initialized, and the router's basic-signal budget (width-2
	// reserved bits = 0) has nothing left to grant it.
	n := notifier.NewBase(notifier.SearchStop)
	queue.notifiers[notifier.EmptyNotifierName] = n

	r.Connect(queue, 0, sink, 0)

	sig, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.True(t, sig.Active())
}

func TestBoundaryWithActivePushAndReachableFlowStillForcesBusy(t *testing.T) {
	r := New()
	source := newTestElement("source")
	boundary := newTestElement("boundary")
	sink := newTestElement("sink")

	r.Connect(source, 0, boundary, 0)
	r.Connect(boundary, 0, sink, 0)

	// boundary reports itself as push-active on this port, but (unlike
	// TestBoundaryWithActivePushForcesBusy) its PortFlow is non-empty, so
	// a continued walk would otherwise find source. The OR in the
	// back-pressure boundary rule means PortActive alone still has to
	// stop the walk here rather than descend to source.
	boundary.active[flowKey(true, 0)] = true
	boundary.flow[flowKey(true, 0)] = []bool{true}

	sig, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.NoError(t, err)
	assert.True(t, sig.Active())
}

func TestUpstreamSearchAbortsOnSearchTimeout(t *testing.T) {
	r := New(WithConfig(config.New(config.WithSearchTimeout(-time.Second))))
	queue := newTestElement("queue")
	sink := newTestElement("sink")

	r.Connect(queue, 0, sink, 0)

	_, err := r.UpstreamSearch(sink, 0, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSearchAborted)
}

func TestNewBasicSignalExhaustion(t *testing.T) {
	r := New(WithConfig(config.New(config.WithSignalWordWidth(4))))
	for i := 0; i < 2; i++ {
		_, err := r.NewBasicSignal()
		require.NoError(t, err)
	}
	_, err := r.NewBasicSignal()
	require.Error(t, err)
}
