package ui

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"Snowfold/internal/fill"
	"Snowfold/internal/geom"
	"Snowfold/internal/sketch"
	"Snowfold/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom      = 0.3
	maxZoom      = 3.0
	zoomStep     = 1.1
	arcSegments  = 24
	curveSteps   = 12
	snapFlash    = 400 * time.Millisecond
	snapDotSize  = 10.0
	initialScale = 0.6
)

var (
	strokeColor = color.NRGBA{R: 30, G: 30, B: 40, A: 255}
	guideColor  = color.NRGBA{R: 170, G: 180, B: 200, A: 255}
	snapColor   = color.NRGBA{R: 230, G: 60, B: 60, A: 255}
)

// WedgeWidget is the drawing surface: it captures pointer input inside the
// wedge, hands it to the session and redraws every replica from replicator
// state. The widget is a pure sink; the session is the source of truth.
type WedgeWidget struct {
	widget.BaseWidget
	session *state.Session

	mu         sync.Mutex
	panX, panY float32
	scale      float32
	drawing    bool
	panning    bool
	liveID     string

	showFill bool
	fillImg  image.Image

	snapPt      geom.Point
	snapVisible bool
	snapTimer   *time.Timer

	statusBar *widget.Label
}

var _ fyne.Widget = (*WedgeWidget)(nil)
var _ fyne.Draggable = (*WedgeWidget)(nil)
var _ desktop.Mouseable = (*WedgeWidget)(nil)

func NewWedgeWidget(s *state.Session) *WedgeWidget {
	w := &WedgeWidget{
		session:   s,
		scale:     initialScale,
		panX:      40,
		panY:      20,
		statusBar: widget.NewLabel("Ready"),
	}
	s.OnSnap = w.flashSnap
	w.ExtendBaseWidget(w)
	return w
}

func (w *WedgeWidget) StatusBar() *widget.Label { return w.statusBar }

// SetStatus is safe from network goroutines.
func (w *WedgeWidget) SetStatus(text string) {
	fyne.Do(func() { w.statusBar.SetText(text) })
}

func (w *WedgeWidget) SetTool(m sketch.Mode) { w.session.SetMode(m) }

func (w *WedgeWidget) SetWidth(width float64) { w.session.SetWidth(width) }

func (w *WedgeWidget) Undo() {
	if !w.session.UndoLast() {
		w.statusBar.SetText("Nothing to undo")
		return
	}
	w.refreshFill()
	w.Refresh()
}

func (w *WedgeWidget) Clear() {
	w.session.ClearAll()
	w.refreshFill()
	w.Refresh()
}

func (w *WedgeWidget) ToggleFill() {
	w.mu.Lock()
	w.showFill = !w.showFill
	w.mu.Unlock()
	w.refreshFill()
	w.Refresh()
}

// refreshFill recomputes the cut/paper preview when it is visible. Called on
// every stroke mutation rather than every frame; the classification is a
// flood fill over the whole mask.
func (w *WedgeWidget) refreshFill() {
	w.mu.Lock()
	show := w.showFill
	w.mu.Unlock()

	var img image.Image
	if show {
		img = fill.Preview(w.session.BakedPaths())
	}
	w.mu.Lock()
	w.fillImg = img
	w.mu.Unlock()
}

// RemoteChanged redraws after a peer's op was applied. Safe from the
// websocket reader goroutines.
func (w *WedgeWidget) RemoteChanged() {
	w.refreshFill()
	fyne.Do(w.Refresh)
}

// flashSnap shows the snap indicator and hides it after snapFlash. A new
// snap stops the previous timer before rescheduling, so rapid snapping never
// hides a fresh indicator early.
func (w *WedgeWidget) flashSnap(p geom.Point) {
	w.mu.Lock()
	w.snapPt = p
	w.snapVisible = true
	if w.snapTimer != nil {
		w.snapTimer.Stop()
	}
	w.snapTimer = time.AfterFunc(snapFlash, func() {
		w.mu.Lock()
		w.snapVisible = false
		w.mu.Unlock()
		fyne.Do(w.Refresh)
	})
	w.mu.Unlock()
}

func (w *WedgeWidget) toLogical(pos fyne.Position) geom.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return geom.Point{
		X: float64((pos.X - w.panX) / w.scale),
		Y: float64((pos.Y - w.panY) / w.scale),
	}
}

func (w *WedgeWidget) toScreen(p geom.Point) fyne.Position {
	return fyne.NewPos(
		float32(p.X)*w.scale+w.panX,
		float32(p.Y)*w.scale+w.panY,
	)
}

func (w *WedgeWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		w.mu.Lock()
		w.panning = true
		w.mu.Unlock()
		return
	}
	lp := w.toLogical(e.Position)
	id, err := w.session.BeginStroke(lp)
	if err != nil {
		// Outside the wedge: the press pans the view instead.
		w.mu.Lock()
		w.panning = true
		w.mu.Unlock()
		return
	}
	w.mu.Lock()
	w.drawing = true
	w.liveID = id
	w.mu.Unlock()
	w.Refresh()
}

func (w *WedgeWidget) Dragged(e *fyne.DragEvent) {
	w.mu.Lock()
	drawing, id := w.drawing, w.liveID
	w.mu.Unlock()

	if drawing {
		if err := w.session.ExtendStroke(id, w.toLogical(e.Position)); err == nil {
			w.Refresh()
		}
		return
	}
	w.mu.Lock()
	w.panX += e.Dragged.DX
	w.panY += e.Dragged.DY
	w.mu.Unlock()
	w.Refresh()
}

func (w *WedgeWidget) MouseUp(e *desktop.MouseEvent) {
	w.mu.Lock()
	drawing, id := w.drawing, w.liveID
	w.drawing = false
	w.panning = false
	w.liveID = ""
	w.mu.Unlock()

	if drawing {
		if _, err := w.session.FinishStroke(id); err == nil {
			w.refreshFill()
		}
	}
	w.Refresh()
}

func (w *WedgeWidget) DragEnd() {
	w.mu.Lock()
	w.panning = false
	w.mu.Unlock()
}

func (w *WedgeWidget) Scrolled(e *fyne.ScrollEvent) {
	w.mu.Lock()
	old := w.scale
	if e.Scrolled.DY > 0 {
		w.scale *= zoomStep
	} else {
		w.scale /= zoomStep
	}
	if w.scale > maxZoom {
		w.scale = maxZoom
	}
	if w.scale < minZoom {
		w.scale = minZoom
	}
	// Keep the point under the cursor fixed while zooming.
	f := w.scale / old
	w.panX = e.Position.X - (e.Position.X-w.panX)*f
	w.panY = e.Position.Y - (e.Position.Y-w.panY)*f
	w.mu.Unlock()
	w.Refresh()
}

func (w *WedgeWidget) MouseIn(*desktop.MouseEvent) {}
func (w *WedgeWidget) MouseOut()                   {}
func (w *WedgeWidget) MouseMoved(*desktop.MouseEvent) {}

func (w *WedgeWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &wedgeRenderer{w: w}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type wedgeRenderer struct {
	w          *WedgeWidget
	background *canvas.Rectangle
}

func (r *wedgeRenderer) Objects() []fyne.CanvasObject {
	w := r.w
	w.mu.Lock()
	scale := w.scale
	fillImg := w.fillImg
	showFill := w.showFill
	snapVisible := w.snapVisible
	snapPt := w.snapPt
	w.mu.Unlock()

	objects := []fyne.CanvasObject{r.background}

	if showFill && fillImg != nil {
		img := canvas.NewImageFromImage(fillImg)
		img.Move(w.toScreen(geom.Point{X: 0, Y: 0}))
		img.Resize(fyne.NewSize(geom.CanvasSize*scale, geom.CanvasSize*scale))
		img.ScaleMode = canvas.ImageScalePixels
		objects = append(objects, img)
	}

	objects = append(objects, r.wedgeGuides(scale)...)

	for _, rep := range w.session.Replicas() {
		baked := rep.Transform.Bake(rep.Geometry)
		pts := baked.Flatten(curveSteps)
		width := float32(rep.Width) * scale
		if width < 1 {
			width = 1
		}
		for i := 0; i+1 < len(pts); i++ {
			seg := canvas.NewLine(strokeColor)
			seg.StrokeWidth = width
			seg.Position1 = w.toScreen(pts[i])
			seg.Position2 = w.toScreen(pts[i+1])
			objects = append(objects, seg)
		}
	}

	if snapVisible {
		dot := canvas.NewCircle(snapColor)
		size := snapDotSize * scale
		pos := w.toScreen(snapPt)
		dot.Move(fyne.NewPos(pos.X-size/2, pos.Y-size/2))
		dot.Resize(fyne.NewSize(size, size))
		objects = append(objects, dot)
	}
	return objects
}

// wedgeGuides draws the fundamental domain: both boundary rays and the arc.
func (r *wedgeRenderer) wedgeGuides(scale float32) []fyne.CanvasObject {
	w := r.w
	var out []fyne.CanvasObject

	edge := func(a, b geom.Point) {
		l := canvas.NewLine(guideColor)
		l.StrokeWidth = 1
		l.Position1 = w.toScreen(a)
		l.Position2 = w.toScreen(b)
		out = append(out, l)
	}

	onBoundary := func(deg float64) geom.Point {
		rad := deg * math.Pi / 180
		return geom.Point{
			X: geom.CenterX + geom.WedgeRadius*math.Sin(rad),
			Y: geom.CenterY - geom.WedgeRadius*math.Cos(rad),
		}
	}

	edge(geom.Center, onBoundary(0))
	edge(geom.Center, onBoundary(geom.WedgeAngle))
	prev := onBoundary(0)
	for i := 1; i <= arcSegments; i++ {
		next := onBoundary(geom.WedgeAngle * float64(i) / arcSegments)
		edge(prev, next)
		prev = next
	}
	return out
}

func (r *wedgeRenderer) Layout(size fyne.Size) { r.background.Resize(size) }
func (r *wedgeRenderer) MinSize() fyne.Size    { return fyne.NewSize(400, 400) }
func (r *wedgeRenderer) Refresh()              { canvas.Refresh(r.w) }
func (r *wedgeRenderer) Destroy()              {}
