package animation

import "fyne.io/fyne/v2"

// Tip is one rest suggestion shown on the break overlay.
type Tip struct {
	Text   string
	Sprite fyne.Resource
}

// IdleSpec holds the two mascot frames used for blinking.
type IdleSpec struct {
	Open   fyne.Resource
	Closed fyne.Resource
}

// Sprite file names for the long break mascot.
const (
	MascotOpenSprite   = "mascot_open.svg"
	MascotClosedSprite = "mascot_closed.svg"
)

// DefaultTips pairs the built-in rest suggestions with sprites from load.
func DefaultTips(load func(name string) fyne.Resource) []Tip {
	return []Tip{
		{Text: "Stand up and stretch your back", Sprite: load("stretch.svg")},
		{Text: "Look at something far away", Sprite: load("look_outside.svg")},
		{Text: "Drink a glass of water", Sprite: load("water.svg")},
		{Text: "Take a short walk", Sprite: load("walk.svg")},
		{Text: "Close your eyes and breathe slowly", Sprite: load("breathe.svg")},
	}
}

// Mascot loads the blinking mascot shown during long breaks.
func Mascot(load func(name string) fyne.Resource) IdleSpec {
	return IdleSpec{Open: load(MascotOpenSprite), Closed: load(MascotClosedSprite)}
}
