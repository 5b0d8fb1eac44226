package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
)

func TestRangeRandomStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 100; i++ {
		got := value.Random(rng)
		if got < value.Min || got >= value.Max {
			t.Fatalf("sample %v outside [%v, %v)", got, value.Min, value.Max)
		}
	}
	fixed := Range{Min: 3 * time.Second, Max: time.Second}
	if got := fixed.Random(rng); got != 3*time.Second {
		t.Fatalf("inverted range should return Min, got %v", got)
	}
}

func fastConfig() Config {
	short := Range{Min: time.Millisecond, Max: time.Millisecond}
	return Config{
		TipDuration:         short,
		BlinkClosedDuration: short,
		BlinkOpenDuration:   short,
		BlinkInterval:       short,
		DoubleBlinkGap:      short,
	}
}

func TestStartTipsRotatesFromFirst(t *testing.T) {
	tips := DefaultTips(func(name string) fyne.Resource {
		return fyne.NewStaticResource(name, []byte("<svg/>"))
	})

	var mu sync.Mutex
	var shown []string
	reached := make(chan struct{})
	var sprites []fyne.Resource
	engine := New(fastConfig(), func(resource fyne.Resource) {
		mu.Lock()
		sprites = append(sprites, resource)
		mu.Unlock()
	})
	engine.SetOnTipChange(func(tip Tip) {
		mu.Lock()
		defer mu.Unlock()
		shown = append(shown, tip.Text)
		if len(shown) == len(tips)+1 {
			close(reached)
		}
	})

	engine.StartTips(context.Background(), tips, 3)
	select {
	case <-reached:
	case <-time.After(2 * time.Second):
		t.Fatalf("tips did not rotate")
	}
	engine.Stop()

	mu.Lock()
	defer mu.Unlock()
	if shown[0] != tips[3].Text || shown[1] != tips[4].Text || shown[2] != tips[0].Text {
		t.Fatalf("unexpected order %v", shown[:3])
	}
	if sprites[0] != tips[3].Sprite {
		t.Fatalf("sprite not updated with tip")
	}
}

func TestStopHaltsIdleAnimation(t *testing.T) {
	open := fyne.NewStaticResource("open", nil)
	closed := fyne.NewStaticResource("closed", nil)

	var mu sync.Mutex
	updates := 0
	engine := New(fastConfig(), func(fyne.Resource) {
		mu.Lock()
		updates++
		mu.Unlock()
	})
	engine.StartIdle(context.Background(), IdleSpec{Open: open, Closed: closed})
	time.Sleep(20 * time.Millisecond)
	engine.Stop()
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	stopped := updates
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if stopped == 0 {
		t.Fatalf("idle animation never updated the sprite")
	}
	if updates != stopped {
		t.Fatalf("animation kept running after Stop: %d -> %d", stopped, updates)
	}
}
