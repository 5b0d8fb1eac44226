package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	TipDuration Range

	BlinkClosedDuration Range
	BlinkOpenDuration   Range
	BlinkInterval       Range
	DoubleBlinkChance   float64
	DoubleBlinkGap      Range
}

// Engine drives the break overlay: rotating rest tips during short breaks and
// a blinking mascot during long ones.
type Engine struct {
	mu           sync.Mutex
	config       Config
	updateSprite func(fyne.Resource)
	onTip        func(Tip)
	cancel       context.CancelFunc
	rng          *rand.Rand
}

// New creates a new animation engine.
func New(config Config, updateSprite func(fyne.Resource)) *Engine {
	return &Engine{
		config:       config,
		updateSprite: updateSprite,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartTips shows tips in order from first, wrapping around, until ctx ends
// or another animation starts.
func (engine *Engine) StartTips(ctx context.Context, tips []Tip, first int) {
	if len(tips) == 0 {
		return
	}
	engine.start(ctx, func(runCtx context.Context, rng *rand.Rand) {
		for index := first; ; index++ {
			tip := tips[((index%len(tips))+len(tips))%len(tips)]
			engine.notifyTipChange(tip)
			engine.updateSprite(tip.Sprite)
			if !sleepWithContext(runCtx, engine.config.TipDuration.Random(rng)) {
				return
			}
		}
	})
}

// StartIdle shows the mascot and blinks it at random intervals, sometimes
// twice in a row.
func (engine *Engine) StartIdle(ctx context.Context, idle IdleSpec) {
	engine.start(ctx, func(runCtx context.Context, rng *rand.Rand) {
		engine.updateSprite(idle.Open)
		for sleepWithContext(runCtx, engine.config.BlinkInterval.Random(rng)) {
			blinks := 1
			if rng.Float64() <= engine.config.DoubleBlinkChance {
				blinks = 2
			}
			for blink := 0; blink < blinks; blink++ {
				if blink > 0 && !sleepWithContext(runCtx, engine.config.DoubleBlinkGap.Random(rng)) {
					return
				}
				if !engine.blink(runCtx, rng, idle) {
					return
				}
			}
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// SetOnTipChange sets a callback that is fired when the shown tip changes.
func (engine *Engine) SetOnTipChange(handler func(Tip)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onTip = handler
}

// start cancels the running animation and launches run. Runs never share a
// random source.
func (engine *Engine) start(parent context.Context, run func(context.Context, *rand.Rand)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	rng := rand.New(rand.NewSource(engine.rng.Int63()))
	engine.mu.Unlock()

	go run(runCtx, rng)
}

func (engine *Engine) blink(ctx context.Context, rng *rand.Rand, idle IdleSpec) bool {
	engine.updateSprite(idle.Closed)
	if !sleepWithContext(ctx, engine.config.BlinkClosedDuration.Random(rng)) {
		return false
	}
	engine.updateSprite(idle.Open)
	return sleepWithContext(ctx, engine.config.BlinkOpenDuration.Random(rng))
}

func (engine *Engine) notifyTipChange(tip Tip) {
	engine.mu.Lock()
	handler := engine.onTip
	engine.mu.Unlock()
	if handler != nil {
		handler(tip)
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
