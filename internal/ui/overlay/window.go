package overlay

import (
	"context"
	"image/color"

	"pomotray/internal/core/timer"
	"pomotray/internal/logging"
	"pomotray/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
}

// View is the text and accent shown for a break state.
type View struct {
	Title   string
	Message string
	Accent  color.NRGBA
	Paused  bool
}

var (
	shortBreakAccent = color.NRGBA{R: 42, G: 161, B: 152, A: 255}
	longBreakAccent  = color.NRGBA{R: 38, G: 139, B: 210, A: 255}
	pausedAccent     = color.NRGBA{R: 181, G: 137, B: 0, A: 255}
)

// Describe returns the overlay view for state. The second result is false
// when the overlay should not be visible in that state.
func Describe(state, previous timer.State) (View, bool) {
	switch state {
	case timer.StateShortBreak:
		return View{Title: "Short Break", Message: "Take a quick breather", Accent: shortBreakAccent}, true
	case timer.StateLongBreak:
		return View{Title: "Long Break", Message: "Time for a longer rest", Accent: longBreakAccent}, true
	case timer.StatePaused:
		if !previous.Break() {
			return View{}, false
		}
		title := "Short Break - Paused"
		if previous == timer.StateLongBreak {
			title = "Long Break - Paused"
		}
		return View{Title: title, Message: "Break paused", Accent: pausedAccent, Paused: true}, true
	default:
		return View{}, false
	}
}

// Window manages the break overlay UI.
type Window struct {
	app    fyne.App
	window fyne.Window
	config Config

	image        *canvas.Image
	timerLabel   *canvas.Text
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
	tipLabel     *canvas.Text
	background   *canvas.Rectangle
	hintLabel    *canvas.Text

	skipButton   *widget.Button
	extendButton *widget.Button
	pauseButton  *widget.Button

	engine    *animation.Engine
	cancelCtx context.CancelFunc
	tips      []animation.Tip
	tipIndex  int
	idle      animation.IdleSpec

	source     *timer.Timer
	controller *timer.Controller
	visible    bool
	// phase is the break currently on screen, kept while it is paused.
	phase timer.State
}

const (
	overlayWidthFraction  = float32(0.22)
	overlayHeightFraction = float32(0.24)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until a break starts.
func New(app fyne.App, config Config, engine *animation.Engine) *Window {
	window := app.NewWindow("pomotray break")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	image := canvas.NewImageFromResource(nil)
	image.FillMode = canvas.ImageFillContain

	timerLabel := canvas.NewText("00:00", white)
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 40

	titleLabel := canvas.NewText("Break", shortBreakAccent)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 24

	messageLabel := canvas.NewText("", white)
	messageLabel.TextSize = 15

	tipLabel := canvas.NewText("", white)
	tipLabel.TextStyle = fyne.TextStyle{Italic: true}
	tipLabel.TextSize = 14

	hintLabel := canvas.NewText("Press ESC to dismiss", color.NRGBA{R: 255, G: 255, B: 255, A: 120})
	hintLabel.Alignment = fyne.TextAlignTrailing
	hintLabel.TextSize = 11

	overlay := &Window{
		app:          app,
		window:       window,
		config:       config,
		image:        image,
		timerLabel:   timerLabel,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		tipLabel:     tipLabel,
		background:   background,
		hintLabel:    hintLabel,
		engine:       engine,
		phase:        timer.StateIdle,
	}

	overlay.pauseButton = widget.NewButton("Pause", overlay.pauseOrResume)
	overlay.extendButton = widget.NewButton("+5 min", overlay.extend)
	overlay.skipButton = widget.NewButton("Skip Break", overlay.skip)
	overlay.skipButton.Importance = widget.HighImportance

	controls := container.NewHBox(overlay.pauseButton, overlay.extendButton, overlay.skipButton)
	leftContent := container.New(&leftPanelLayout{}, titleLabel, messageLabel, tipLabel, timerLabel)
	rightContent := container.New(&rightPanelLayout{}, image, controls)
	content := container.NewBorder(nil, hintLabel, nil, nil, container.NewGridWithColumns(2, leftContent, rightContent))
	window.SetContent(container.NewStack(background, content))

	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeyEscape {
			logging.Debugf("overlay: dismissed with escape")
			overlay.Hide()
		}
	})
	window.SetCloseIntercept(overlay.Hide)

	overlay.applyWindowMode()
	return overlay
}

// SetEngine attaches the animation engine.
func (overlay *Window) SetEngine(engine *animation.Engine) {
	overlay.engine = engine
	if engine != nil {
		engine.SetOnTipChange(overlay.SetTip)
	}
}

// SetTips sets the rest suggestions rotated during short breaks.
func (overlay *Window) SetTips(tips []animation.Tip) {
	overlay.tips = tips
}

// SetIdle sets the sprites used during long breaks.
func (overlay *Window) SetIdle(idle animation.IdleSpec) {
	overlay.idle = idle
}

// Bind routes the overlay buttons to controller.
func (overlay *Window) Bind(controller *timer.Controller) {
	overlay.controller = controller
}

// Attach shows the overlay when a break starts and hides it otherwise.
func (overlay *Window) Attach(source *timer.Timer) {
	overlay.source = source
	source.Subscribe(overlay.handle)
}

// Visible reports whether the overlay is on screen.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

func (overlay *Window) handle(event timer.Event) {
	switch event.Type {
	case timer.EventStateChanged:
		previous := overlay.source.PreviousState()
		if _, ok := Describe(event.State, previous); !ok {
			overlay.Hide()
			overlay.phase = timer.StateIdle
			return
		}
		if event.State.Break() && (event.State != overlay.phase || !overlay.visible) {
			overlay.phase = event.State
			overlay.showBreak(event.State, event.Remaining)
			return
		}
		overlay.render(event.State, event.Remaining)
	case timer.EventTimeChanged:
		if overlay.visible {
			overlay.render(event.State, event.Remaining)
		}
	}
}

func (overlay *Window) showBreak(state timer.State, remaining int) {
	overlay.stopEngine()
	overlay.render(state, remaining)
	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()
	overlay.visible = true
	logging.Debugf("overlay: shown for %s", state)

	if overlay.engine == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel
	if state == timer.StateLongBreak {
		overlay.setTipUnsafe("")
		overlay.engine.StartIdle(ctx, overlay.idle)
		return
	}
	overlay.engine.StartTips(ctx, overlay.tips, overlay.tipIndex)
	overlay.tipIndex++
}

func (overlay *Window) render(state timer.State, remaining int) {
	previous := timer.StateIdle
	if overlay.source != nil {
		previous = overlay.source.PreviousState()
	}
	view, ok := Describe(state, previous)
	if !ok {
		return
	}

	overlay.titleLabel.Text = view.Title
	overlay.titleLabel.Color = view.Accent
	overlay.titleLabel.Refresh()
	overlay.messageLabel.Text = view.Message
	overlay.messageLabel.Refresh()
	overlay.timerLabel.Text = timer.FormatClock(remaining)
	overlay.timerLabel.Refresh()

	if view.Paused {
		overlay.pauseButton.SetText("Resume")
	} else {
		overlay.pauseButton.SetText("Pause")
	}
}

// Hide closes the overlay and stops animations.
func (overlay *Window) Hide() {
	overlay.stopEngine()
	if !overlay.visible {
		return
	}
	overlay.visible = false
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
	logging.Debugf("overlay: hidden")
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity}
	canvas.Refresh(overlay.background)
	if overlay.visible {
		overlay.applyWindowMode()
	}
}

// SetSprite updates the sprite image.
func (overlay *Window) SetSprite(resource fyne.Resource) {
	fyne.Do(func() {
		overlay.image.Resource = resource
		overlay.image.Refresh()
	})
}

// SetTip updates the suggestion text.
func (overlay *Window) SetTip(tip animation.Tip) {
	fyne.Do(func() {
		overlay.setTipUnsafe(tip.Text)
	})
}

func (overlay *Window) setTipUnsafe(text string) {
	overlay.tipLabel.Text = text
	overlay.tipLabel.Refresh()
}

func (overlay *Window) skip() {
	if overlay.controller == nil {
		return
	}
	logging.Infof("overlay: break skipped by user")
	overlay.controller.SkipBreak()
	overlay.Hide()
}

func (overlay *Window) extend() {
	if overlay.controller != nil {
		overlay.controller.ExtendBreak()
	}
}

func (overlay *Window) pauseOrResume() {
	if overlay.controller != nil {
		overlay.controller.PauseOrResume()
	}
}

func (overlay *Window) stopEngine() {
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
	if overlay.engine != nil {
		overlay.engine.Stop()
	}
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// OpacityToAlpha converts a 0..1 opacity to a background alpha.
func OpacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
