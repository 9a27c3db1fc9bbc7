package workflow

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"

	"askdb/cli/internal/backend"
	"askdb/cli/internal/chart"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	submit func(ctx context.Context, q string) (*backend.QueryResult, error)
	chart  func(ctx context.Context, sql string) (*backend.ChartResult, error)
	check  func(ctx context.Context, q string) (*backend.CheckResult, error)

	submitCalls atomic.Int32
	chartCalls  atomic.Int32
	checkCalls  atomic.Int32

	mu          sync.Mutex
	chartSQL    []string
	submitInput []string
}

func (f *fakeBackend) SubmitQuery(ctx context.Context, q string) (*backend.QueryResult, error) {
	f.submitCalls.Add(1)
	f.mu.Lock()
	f.submitInput = append(f.submitInput, q)
	f.mu.Unlock()
	return f.submit(ctx, q)
}

func (f *fakeBackend) GenerateChart(ctx context.Context, sql string) (*backend.ChartResult, error) {
	f.chartCalls.Add(1)
	f.mu.Lock()
	f.chartSQL = append(f.chartSQL, sql)
	f.mu.Unlock()
	return f.chart(ctx, sql)
}

func (f *fakeBackend) CheckAtomicQuery(ctx context.Context, q string) (*backend.CheckResult, error) {
	f.checkCalls.Add(1)
	return f.check(ctx, q)
}

type recordingView struct {
	mu     sync.Mutex
	frames []State
}

func (v *recordingView) Render(s State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frames = append(v.frames, s)
}

func (v *recordingView) all() []State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]State(nil), v.frames...)
}

type note struct {
	ok  bool
	msg string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recordingNotifier) Success(msg string) { n.add(note{ok: true, msg: msg}) }
func (n *recordingNotifier) Error(msg string)   { n.add(note{msg: msg}) }

func (n *recordingNotifier) add(x note) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, x)
}

func (n *recordingNotifier) all() []note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]note(nil), n.notes...)
}

// fakeRenderer tracks how many instances are alive at once.
type fakeRenderer struct {
	mu       sync.Mutex
	live     int
	maxLive  int
	rendered []*fakeInstance
	fail     error
}

type fakeInstance struct {
	r         *fakeRenderer
	canvas    *chart.Canvas
	cfg       chart.Config
	destroyed bool
}

func (i *fakeInstance) Canvas() *chart.Canvas { return i.canvas }
func (i *fakeInstance) Config() chart.Config  { return i.cfg }
func (i *fakeInstance) Destroy() {
	i.r.mu.Lock()
	defer i.r.mu.Unlock()
	if i.destroyed {
		return
	}
	i.destroyed = true
	i.r.live--
	i.canvas.Clear()
}

func (r *fakeRenderer) Render(c *chart.Canvas, cfg chart.Config) (chart.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		c.Draw("half a chart")
		return nil, r.fail
	}
	c.Draw("chart")
	inst := &fakeInstance{r: r, canvas: c, cfg: cfg}
	r.rendered = append(r.rendered, inst)
	r.live++
	if r.live > r.maxLive {
		r.maxLive = r.live
	}
	return inst, nil
}

type harness struct {
	api    *fakeBackend
	view   *recordingView
	notes  *recordingNotifier
	render *fakeRenderer
	ctrl   *Controller
}

func newHarness(t *testing.T, api *fakeBackend, precomputed bool) *harness {
	t.Helper()
	h := &harness{
		api:    api,
		view:   &recordingView{},
		notes:  &recordingNotifier{},
		render: &fakeRenderer{},
	}
	h.ctrl = New(Options{
		Backend:         api,
		View:            h.view,
		Notifier:        h.notes,
		Renderer:        h.render,
		ShowPrecomputed: precomputed,
	})
	return h
}

func queryOK(mainQuery string, checks ...backend.AtomicCheck) func(context.Context, string) (*backend.QueryResult, error) {
	return func(context.Context, string) (*backend.QueryResult, error) {
		return &backend.QueryResult{
			HasData:      true,
			MainQuery:    mainQuery,
			HasMainQuery: mainQuery != "",
			Checks:       checks,
		}, nil
	}
}

func chartOK(labels []string, values []float64, result string) func(context.Context, string) (*backend.ChartResult, error) {
	return func(context.Context, string) (*backend.ChartResult, error) {
		res := &backend.ChartResult{Labels: labels, Values: values}
		if result != "" {
			res.Result = json.RawMessage(result)
		}
		return res, nil
	}
}
