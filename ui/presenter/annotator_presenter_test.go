package presenter

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/soocke/face-annotator-go/domain/annotate"
	"github.com/soocke/face-annotator-go/domain/face"
	"github.com/soocke/face-annotator-go/domain/source"
	"github.com/soocke/face-annotator-go/ui/model"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockPicker struct {
	sel   source.Selection
	calls int
}

func (m *mockPicker) Select() <-chan source.Selection {
	m.calls++
	ch := make(chan source.Selection, 1)
	ch <- m.sel
	close(ch)
	return ch
}

type mockDetector struct {
	operational bool
	regions     face.Regions
	err         error
	mu          sync.Mutex
	detected    int
	closed      int
	lastImg     image.Image
}

func (d *mockDetector) Operational() bool { return d.operational }
func (d *mockDetector) Detect(img image.Image) (face.Regions, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detected++
	d.lastImg = img
	return d.regions, d.err
}
func (d *mockDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed++
	return nil
}

type factoryRecorder struct {
	mu    sync.Mutex
	det   *mockDetector
	calls int
	opts  []face.Options
}

func (f *factoryRecorder) build(opts face.Options) (face.Detector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.opts = append(f.opts, opts)
	return f.det, nil
}

type mockResolver struct {
	mu    sync.Mutex
	err   error
	opens int
}

func (r *mockResolver) Open(h source.Handle) (io.ReadCloser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opens++
	if r.err != nil {
		return nil, r.err
	}
	return io.NopCloser(bytes.NewReader([]byte(h.URI))), nil
}

func (r *mockResolver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opens
}

type mockDecoder struct {
	img *image.RGBA
	err error
}

func (d *mockDecoder) Decode(io.Reader) (*image.RGBA, error) { return d.img, d.err }

type mockDisplay struct{ shown []image.Image }

func (v *mockDisplay) ShowImage(img image.Image) { v.shown = append(v.shown, img) }

type mockMessages struct{ messages, errors []string }

func (m *mockMessages) ShowMessage(msg string) { m.messages = append(m.messages, msg) }
func (m *mockMessages) ShowError(msg string)   { m.errors = append(m.errors, msg) }

type fixture struct {
	p        *AnnotatorPresenter
	factory  *factoryRecorder
	resolver *mockResolver
	decoder  *mockDecoder
	display  *mockDisplay
	messages *mockMessages
}

func newFixture(det *mockDetector, surface bool) *fixture {
	raster := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(raster, raster.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	f := &fixture{
		factory:  &factoryRecorder{det: det},
		resolver: &mockResolver{},
		decoder:  &mockDecoder{img: raster},
		display:  &mockDisplay{},
		messages: &mockMessages{},
	}
	f.p = NewAnnotatorPresenter(model.NewAnnotatorModel(), model.NewStatsModel(), f.factory.build,
		face.Options{Tracking: true}, f.resolver, f.decoder, f.display, f.messages,
		annotate.DefaultStyle(), surface, discardLogger)
	return f
}

// tickUntil drives the presenter like the UI loop until cond holds.
func tickUntil(t *testing.T, p *AnnotatorPresenter, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.Tick()
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for condition (state=%v)", p.Model.State())
}

func idle(p *AnnotatorPresenter) func() bool {
	return func() bool { return p.Model.State() == model.StateIdle }
}

func TestAnnotator_CancelledSelectionDoesNothing(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	prev := image.NewRGBA(image.Rect(0, 0, 1, 1))
	f.p.Model.SetDisplayed(prev, 0)

	f.p.RequestImageSelection(&mockPicker{sel: source.Cancelled()})
	if f.p.Model.State() != model.StateAwaitingSelection {
		t.Fatalf("expected awaiting selection, got %v", f.p.Model.State())
	}
	f.p.Tick()
	if f.p.Model.State() != model.StateIdle {
		t.Fatalf("expected idle after cancel, got %v", f.p.Model.State())
	}
	if f.factory.calls != 0 || f.resolver.count() != 0 {
		t.Fatalf("no detection expected: factory=%d opens=%d", f.factory.calls, f.resolver.count())
	}
	if len(f.messages.messages)+len(f.messages.errors) != 0 || len(f.display.shown) != 0 {
		t.Fatalf("no ui effect expected: %+v %d", f.messages, len(f.display.shown))
	}
	if img, _ := f.p.Model.Displayed(); img != prev {
		t.Fatalf("displayed image changed on cancel")
	}
}

func TestAnnotator_DetectorUnavailable(t *testing.T) {
	f := newFixture(&mockDetector{operational: false}, false)

	f.p.RequestImageSelection(&mockPicker{sel: source.Selected(source.FileHandle("/photos/a.jpg"))})
	tickUntil(t, f.p, func() bool { return len(f.messages.errors) > 0 })

	if f.messages.errors[0] != annotate.MessageDetectorUnavailable {
		t.Fatalf("unexpected error message %q", f.messages.errors[0])
	}
	if f.resolver.count() != 0 {
		t.Fatalf("image must not be opened when detector is unavailable, opens=%d", f.resolver.count())
	}
	if len(f.display.shown) != 0 || len(f.messages.messages) != 0 {
		t.Fatalf("display must stay unchanged")
	}
	tickUntil(t, f.p, idle(f.p))
}

func TestAnnotator_ThreeFacesScenario(t *testing.T) {
	regions := face.Regions{
		4: {X: 10, Y: 10, Width: 20, Height: 20},
		9: {X: 40, Y: 15, Width: 25, Height: 30},
		1: {X: 60, Y: 60, Width: 30, Height: 30},
	}
	det := &mockDetector{operational: true, regions: regions}
	f := newFixture(det, true)

	f.p.RequestImageSelection(&mockPicker{sel: source.Selected(source.FileHandle("/photos/group.jpg"))})
	tickUntil(t, f.p, func() bool { return len(f.messages.messages) > 0 })
	tickUntil(t, f.p, idle(f.p))

	if len(f.messages.messages) != 1 || f.messages.messages[0] != annotate.MessageManyFaces {
		t.Fatalf("expected one 'more than one face' message, got %v", f.messages.messages)
	}
	if len(f.display.shown) != 1 {
		t.Fatalf("expected display replaced once, got %d", len(f.display.shown))
	}
	if det.lastImg != f.decoder.img {
		t.Fatalf("detector must receive the decoded raster")
	}
	if det.closed != 1 {
		t.Fatalf("detector should be closed after the pass, closed=%d", det.closed)
	}
	if len(f.factory.opts) != 1 || f.factory.opts[0].Tracking {
		t.Fatalf("detector must be built with tracking disabled: %+v", f.factory.opts)
	}
	shown, n := f.p.Model.Displayed()
	if shown != f.display.shown[0] || n != 3 {
		t.Fatalf("model display mismatch n=%d", n)
	}
	if s := f.p.Stats.Values(); s.Passes != 1 || s.LastFaces != 3 {
		t.Fatalf("stats not recorded: %+v", s)
	}
}

func TestAnnotator_ResourceNotFound(t *testing.T) {
	for _, surface := range []bool{false, true} {
		f := newFixture(&mockDetector{operational: true}, surface)
		f.resolver.err = source.ErrResourceNotFound
		f.p.OnImageSelected(source.Selected(source.FileHandle("/revoked.jpg")))
		tickUntil(t, f.p, func() bool { return f.p.Model.State() == model.StateIdle && f.resolver.count() == 1 })

		if len(f.display.shown) != 0 || len(f.messages.messages) != 0 {
			t.Fatalf("surface=%v: no summary expected", surface)
		}
		if surface && (len(f.messages.errors) != 1 || f.messages.errors[0] != annotate.MessageResourceNotFound) {
			t.Fatalf("surface=%v: expected not-found error, got %v", surface, f.messages.errors)
		}
		if !surface && len(f.messages.errors) != 0 {
			t.Fatalf("surface=%v: expected silent failure, got %v", surface, f.messages.errors)
		}
	}
}

func TestAnnotator_DecodeFailureSilentByDefault(t *testing.T) {
	det := &mockDetector{operational: true}
	f := newFixture(det, false)
	f.decoder.img = nil
	f.decoder.err = source.ErrDecodeFailure
	f.p.OnImageSelected(source.Selected(source.FileHandle("/broken.jpg")))
	tickUntil(t, f.p, func() bool { return f.p.Model.State() == model.StateIdle })
	if det.detected != 0 {
		t.Fatalf("detector must not run without a raster")
	}
	if len(f.messages.errors)+len(f.messages.messages)+len(f.display.shown) != 0 {
		t.Fatalf("decode failure should be silent")
	}
}

func TestRunDetection_Outcomes(t *testing.T) {
	boom := errors.New("backend crashed")
	tests := []struct {
		name    string
		det     *mockDetector
		resErr  error
		want    PassOutcome
		wantErr error
	}{
		{"detected", &mockDetector{operational: true, regions: face.Regions{0: {Width: 1, Height: 1}}}, nil, PassDetected, nil},
		{"unavailable", &mockDetector{}, nil, PassDetectorUnavailable, face.ErrNotOperational},
		{"not found", &mockDetector{operational: true}, source.ErrResourceNotFound, PassResourceNotFound, source.ErrResourceNotFound},
		{"detect error", &mockDetector{operational: true, err: boom}, nil, PassDetectFailure, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.det, true)
			f.resolver.err = tt.resErr
			res := f.p.RunDetection(source.FileHandle("/x.png"))
			if res.Outcome != tt.want {
				t.Fatalf("outcome = %v, want %v (err=%v)", res.Outcome, tt.want, res.Err)
			}
			if tt.wantErr != nil && !errors.Is(res.Err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", res.Err, tt.wantErr)
			}
			if tt.want == PassDetected && (res.Raster != f.decoder.img || len(res.Regions) != 1) {
				t.Fatalf("detected pass must carry the decoded raster and regions")
			}
			if tt.want != PassDetected && res.Raster != nil {
				t.Fatalf("failed pass must not carry a raster")
			}
		})
	}
}

func TestRunDetection_NilRegionsBecomeEmpty(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	res := f.p.RunDetection(source.FileHandle("/x.png"))
	if res.Outcome != PassDetected || res.Regions == nil || len(res.Regions) != 0 {
		t.Fatalf("expected empty regions, got %+v", res)
	}
}

type panicDecoder struct{}

func (panicDecoder) Decode(io.Reader) (*image.RGBA, error) { panic("corrupt codec state") }

func TestRunDetection_RecoversPanic(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	f.p.Decoder = panicDecoder{}
	res := f.p.RunDetection(source.FileHandle("/x.png"))
	if res.Outcome != PassDetectFailure || res.Err == nil {
		t.Fatalf("expected recovered detect failure, got %+v", res)
	}
}

func TestHandlePass_DropsStalePass(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	stale := f.p.Model.BeginPass()
	current := f.p.Model.BeginPass()

	f.p.handlePass(Pass{Seq: stale, Outcome: PassDetected, Raster: f.decoder.img, Regions: face.Regions{}})
	if len(f.display.shown) != 0 || len(f.messages.messages) != 0 {
		t.Fatalf("stale pass must not touch the display")
	}
	if f.p.Model.State() != model.StateDetecting {
		t.Fatalf("still detecting the current pass, got %v", f.p.Model.State())
	}

	f.p.handlePass(Pass{Seq: current, Outcome: PassDetected, Raster: f.decoder.img, Regions: face.Regions{0: {X: 1, Y: 1, Width: 10, Height: 10}}})
	if len(f.messages.messages) != 1 || f.messages.messages[0] != annotate.MessageOneFace {
		t.Fatalf("current pass should summarize, got %v", f.messages.messages)
	}
	if f.p.Model.State() != model.StateIdle {
		t.Fatalf("expected idle, got %v", f.p.Model.State())
	}
}

func TestRenderAndSummarize_ExactlyOneMessagePerCount(t *testing.T) {
	counts := map[int]string{0: annotate.MessageNoFace, 1: annotate.MessageOneFace, 2: annotate.MessageManyFaces, 5: annotate.MessageManyFaces}
	for n, want := range counts {
		f := newFixture(&mockDetector{operational: true}, true)
		regions := face.Regions{}
		for i := 0; i < n; i++ {
			regions[i*3] = face.Region{X: i * 15, Y: 5, Width: 10, Height: 10}
		}
		res := f.p.RenderAndSummarize(f.decoder.img, regions)
		if len(f.messages.messages) != 1 || f.messages.messages[0] != want {
			t.Fatalf("count=%d: messages %v, want [%q]", n, f.messages.messages, want)
		}
		if len(res.Outlines) != n {
			t.Fatalf("count=%d: drew %d outlines", n, len(res.Outlines))
		}
		for _, r := range regions {
			found := false
			for _, o := range res.Outlines {
				if o == image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height) {
					found = true
				}
			}
			if !found {
				t.Fatalf("count=%d: region %+v not drawn at identity bounds", n, r)
			}
		}
	}
}

func TestRenderAndSummarize_Idempotent(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	regions := face.Regions{0: {X: 10, Y: 10, Width: 30, Height: 30}, 1: {X: 50, Y: 50, Width: 20, Height: 20}}
	a := f.p.RenderAndSummarize(f.decoder.img, regions)
	b := f.p.RenderAndSummarize(f.decoder.img, regions)
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Fatalf("annotated output differs between identical calls")
	}
}

func TestRequestImageSelection_IgnoredWhilePending(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	picker := &mockPicker{sel: source.Cancelled()}
	f.p.RequestImageSelection(picker)
	f.p.RequestImageSelection(picker)
	if picker.calls != 1 {
		t.Fatalf("second request should be ignored while pending, calls=%d", picker.calls)
	}
	f.p.Tick()
	f.p.RequestImageSelection(picker)
	if picker.calls != 2 {
		t.Fatalf("request after resolution should open picker, calls=%d", picker.calls)
	}
}

func TestRunDetection_UnavailableDiscardsSnapshot(t *testing.T) {
	f := newFixture(&mockDetector{}, true)
	path := filepath.Join(t.TempDir(), "grab.png")
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}
	res := f.p.RunDetection(source.Handle{URI: path, Ephemeral: true})
	if res.Outcome != PassDetectorUnavailable {
		t.Fatalf("outcome = %v", res.Outcome)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("snapshot should be removed when it is never opened, stat err=%v", err)
	}
}

func TestHandlePass_LogsOutcome(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	var buf bytes.Buffer
	f.p.logger = slog.New(slog.NewJSONHandler(&buf, nil))

	f.p.handlePass(Pass{Seq: f.p.Model.BeginPass(), Outcome: PassDetected, Raster: f.decoder.img, Regions: face.Regions{
		0: {X: 1, Y: 1, Width: 10, Height: 10},
		1: {X: 20, Y: 1, Width: 10, Height: 10},
		2: {X: 40, Y: 1, Width: 10, Height: 10},
	}})
	out := buf.String()
	if !strings.Contains(out, `"faces detected"`) || !strings.Contains(out, `"outcome":"many"`) {
		t.Fatalf("expected outcome in log, got %s", out)
	}
}

func TestAnnotator_ReplacedFactoryUsedForNextPass(t *testing.T) {
	f := newFixture(&mockDetector{operational: true}, true)
	replaced := &factoryRecorder{det: &mockDetector{}}
	f.p.Factory = replaced.build

	f.p.RequestImageSelection(&mockPicker{sel: source.Selected(source.FileHandle("/photos/a.jpg"))})
	tickUntil(t, f.p, func() bool { return len(f.messages.errors) > 0 })
	tickUntil(t, f.p, idle(f.p))

	if f.factory.calls != 0 || replaced.calls != 1 {
		t.Fatalf("pass should use the factory set before dispatch: old=%d new=%d", f.factory.calls, replaced.calls)
	}
}
