package presenter

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/face-annotator-go/domain/annotate"
	"github.com/soocke/face-annotator-go/domain/face"
	"github.com/soocke/face-annotator-go/domain/source"
	"github.com/soocke/face-annotator-go/ui/model"
)

// ImagePicker lets the user choose an image. The returned channel delivers exactly
// one Selection and is then closed.
type ImagePicker interface {
	Select() <-chan source.Selection
}

// RasterDecoder decodes a stream into a mutable raster.
type RasterDecoder interface {
	Decode(r io.Reader) (*image.RGBA, error)
}

// ImageDisplay is the surface holding the current (annotated) image.
type ImageDisplay interface {
	ShowImage(img image.Image)
}

// MessageSink shows modal messages to the user.
type MessageSink interface {
	ShowMessage(msg string)
	ShowError(msg string)
}

// PassOutcome is how a detection pass ended.
type PassOutcome int

const (
	PassDetected PassOutcome = iota + 1
	PassDetectorUnavailable
	PassResourceNotFound
	PassDecodeFailure
	PassDetectFailure
)

func (o PassOutcome) String() string {
	switch o {
	case PassDetected:
		return "detected"
	case PassDetectorUnavailable:
		return "detector_unavailable"
	case PassResourceNotFound:
		return "resource_not_found"
	case PassDecodeFailure:
		return "decode_failure"
	case PassDetectFailure:
		return "detect_failure"
	default:
		return "unknown"
	}
}

// Pass is the result of RunDetection. Raster and Regions are only set for PassDetected
// and always belong to the same snapshot.
type Pass struct {
	Seq      uint64
	ID       string
	Handle   source.Handle
	Outcome  PassOutcome
	Raster   *image.RGBA
	Regions  face.Regions
	Err      error
	Duration time.Duration
}

// passTask carries the settings in effect at dispatch, so later edits on the
// UI thread never race with the worker.
type passTask struct {
	seq     uint64
	id      string
	handle  source.Handle
	factory face.Factory
	opts    face.Options
	decoder RasterDecoder
}

// AnnotatorPresenter is the photo face annotator: it drives picker → decode →
// detect → render → summary. Every exported method except RunDetection must be
// called from the UI thread; detection itself runs on one background worker.
type AnnotatorPresenter struct {
	Model             *model.AnnotatorModel
	Stats             *model.StatsModel
	Factory           face.Factory
	Options           face.Options
	Resolver          source.Resolver
	Decoder           RasterDecoder
	Display           ImageDisplay
	Messages          MessageSink
	Style             annotate.Style
	SurfaceLoadErrors bool
	logger            *slog.Logger

	pending <-chan source.Selection
	applied uint64

	workerOnce sync.Once
	workCh     chan passTask
	resultCh   chan Pass
}

// NewAnnotatorPresenter constructs the presenter. opts.Tracking is forced off.
func NewAnnotatorPresenter(m *model.AnnotatorModel, stats *model.StatsModel, factory face.Factory, opts face.Options, resolver source.Resolver, decoder RasterDecoder, display ImageDisplay, messages MessageSink, style annotate.Style, surfaceLoadErrors bool, logger *slog.Logger) *AnnotatorPresenter {
	if m == nil {
		m = model.NewAnnotatorModel()
	}
	if resolver == nil {
		resolver = source.FileResolver{}
	}
	if decoder == nil {
		decoder = source.Decoder{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts.Tracking = false
	return &AnnotatorPresenter{
		Model:             m,
		Stats:             stats,
		Factory:           factory,
		Options:           opts,
		Resolver:          resolver,
		Decoder:           decoder,
		Display:           display,
		Messages:          messages,
		Style:             style,
		SurfaceLoadErrors: surfaceLoadErrors,
		logger:            logger,
		workCh:            make(chan passTask, 1),
		resultCh:          make(chan Pass, 1),
	}
}

// RequestImageSelection opens picker and parks its future until Tick sees the result.
// Ignored while another selection is pending.
func (p *AnnotatorPresenter) RequestImageSelection(picker ImagePicker) {
	if p == nil || picker == nil {
		return
	}
	if p.pending != nil {
		p.logger.Debug("selection already pending")
		return
	}
	p.Model.SetState(model.StateAwaitingSelection)
	ch := picker.Select()
	if ch == nil {
		p.settle()
		return
	}
	p.pending = ch
}

// Tick resolves a pending selection and applies finished passes.
func (p *AnnotatorPresenter) Tick() {
	if p == nil {
		return
	}
	if p.pending != nil {
		select {
		case sel, ok := <-p.pending:
			p.pending = nil
			if !ok {
				sel = source.Cancelled()
			}
			p.OnImageSelected(sel)
		default:
		}
	}
	for {
		select {
		case res := <-p.resultCh:
			p.handlePass(res)
		default:
			return
		}
	}
}

// OnImageSelected dispatches a detection pass for a successful pick. Cancelled or
// failed selections end the cycle without any user-visible effect.
func (p *AnnotatorPresenter) OnImageSelected(sel source.Selection) {
	if p == nil {
		return
	}
	if !sel.OK() {
		if sel.Err != nil && !errors.Is(sel.Err, source.ErrSelectionCancelled) {
			p.logger.Warn("image selection failed", "error", sel.Err)
		} else {
			p.logger.Debug("image selection cancelled")
		}
		p.settle()
		return
	}
	p.ensureWorker()
	task := passTask{seq: p.Model.BeginPass(), id: uuid.NewString(), handle: sel.Handle, factory: p.Factory, opts: p.Options, decoder: p.Decoder}
	p.logger.Info("detection pass started", "pass", task.id, "image", sel.Handle.String())
	p.dispatch(task)
}

// settle returns the model to Idle, or Detecting when a pass is still in flight.
func (p *AnnotatorPresenter) settle() {
	if p.Model.Sequence() > p.applied {
		p.Model.SetState(model.StateDetecting)
		return
	}
	p.Model.SetState(model.StateIdle)
}

func (p *AnnotatorPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *AnnotatorPresenter) runWorker() {
	for task := range p.workCh {
		res := p.runPass(task.handle, task.factory, task.opts, task.decoder)
		res.Seq = task.seq
		res.ID = task.id
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *AnnotatorPresenter) dispatch(task passTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case old := <-p.workCh:
			p.discard(old.handle)
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

// RunDetection executes one pass synchronously: build the detector, open and decode
// the image, detect faces. It touches no UI and never panics.
func (p *AnnotatorPresenter) RunDetection(h source.Handle) Pass {
	return p.runPass(h, p.Factory, p.Options, p.Decoder)
}

func (p *AnnotatorPresenter) runPass(h source.Handle, factory face.Factory, opts face.Options, decoder RasterDecoder) (res Pass) {
	start := time.Now()
	res.Handle = h
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("detection pass panic", "error", r, "stack", string(debug.Stack()))
			res.Outcome = PassDetectFailure
			res.Raster, res.Regions = nil, nil
			res.Err = fmt.Errorf("detection panic: %v", r)
		}
		res.Duration = time.Since(start)
	}()

	if factory == nil {
		p.discard(h)
		res.Outcome = PassDetectorUnavailable
		res.Err = face.ErrNotOperational
		return res
	}
	opts.Tracking = false
	det, err := factory(opts)
	if err != nil || det == nil || !det.Operational() {
		p.discard(h)
		res.Outcome = PassDetectorUnavailable
		res.Err = errors.Join(face.ErrNotOperational, err)
		if det != nil {
			_ = det.Close()
		}
		return res
	}
	defer det.Close()

	rc, err := p.Resolver.Open(h)
	if err != nil {
		res.Outcome = PassResourceNotFound
		res.Err = err
		return res
	}
	raster, err := decoder.Decode(rc)
	if cerr := rc.Close(); cerr != nil {
		p.logger.Warn("close image stream", "error", cerr)
	}
	if err != nil || raster == nil {
		res.Outcome = PassDecodeFailure
		if err == nil {
			err = source.ErrDecodeFailure
		}
		res.Err = err
		return res
	}

	regions, err := det.Detect(raster)
	if err != nil {
		res.Outcome = PassDetectFailure
		res.Err = err
		return res
	}
	if regions == nil {
		regions = face.Regions{}
	}
	res.Outcome = PassDetected
	res.Raster = raster
	res.Regions = regions
	return res
}

func (p *AnnotatorPresenter) discard(h source.Handle) {
	if err := h.Discard(); err != nil {
		p.logger.Warn("discard snapshot", "error", err)
	}
}

func (p *AnnotatorPresenter) handlePass(res Pass) {
	if !p.Model.IsCurrent(res.Seq) {
		p.logger.Debug("stale detection pass dropped", "pass", res.ID, "seq", res.Seq)
		return
	}
	p.applied = res.Seq
	switch res.Outcome {
	case PassDetected:
		p.logger.Info("faces detected", "pass", res.ID, "count", len(res.Regions),
			"outcome", annotate.Summarize(len(res.Regions)).String(), "took", res.Duration)
		p.Stats.Record(len(res.Regions), res.Duration)
		p.RenderAndSummarize(res.Raster, res.Regions)
		return
	case PassDetectorUnavailable:
		p.logger.Error("face detector unavailable", "pass", res.ID, "error", res.Err)
		p.showError(annotate.MessageDetectorUnavailable)
	case PassResourceNotFound:
		p.logger.Error("image not found", "pass", res.ID, "image", res.Handle.String(), "error", res.Err)
		if p.SurfaceLoadErrors {
			p.showError(annotate.MessageResourceNotFound)
		}
	case PassDecodeFailure:
		p.logger.Warn("image decode failed", "pass", res.ID, "image", res.Handle.String(), "error", res.Err)
		if p.SurfaceLoadErrors {
			p.showError(annotate.MessageDecodeFailure)
		}
	default:
		p.logger.Error("face detection failed", "pass", res.ID, "error", res.Err)
		if p.SurfaceLoadErrors {
			p.showError(annotate.MessageDetectFailure)
		}
	}
	p.settle()
}

func (p *AnnotatorPresenter) showError(msg string) {
	if p.Messages != nil {
		p.Messages.ShowError(msg)
	}
}

// RenderAndSummarize draws the regions onto a copy of img, replaces the displayed
// image with it and shows exactly one message chosen by the face count.
func (p *AnnotatorPresenter) RenderAndSummarize(img image.Image, regions face.Regions) annotate.Result {
	if p == nil {
		return annotate.Result{}
	}
	p.Model.SetState(model.StateDisplaying)
	res := annotate.Render(img, regions, p.Style)
	if p.Display != nil {
		p.Display.ShowImage(res.Image)
	}
	p.Model.SetDisplayed(res.Image, len(regions))
	outcome := annotate.Summarize(len(regions))
	if p.Messages != nil {
		p.Messages.ShowMessage(outcome.Message())
	}
	p.settle()
	return res
}
