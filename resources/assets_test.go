package resources

import (
	"slices"
	"strings"
	"testing"

	"pomotray/internal/ui/animation"

	"fyne.io/fyne/v2"
)

func TestEveryTipSpriteIsEmbedded(t *testing.T) {
	var missing []string
	load := func(name string) fyne.Resource {
		if _, err := Sprite(name); err != nil {
			missing = append(missing, name)
		}
		return nil
	}
	animation.DefaultTips(load)
	animation.Mascot(load)
	if len(missing) > 0 {
		t.Fatalf("missing sprites: %s", strings.Join(missing, ", "))
	}
}

func TestSpritesListing(t *testing.T) {
	names := Sprites()
	if !slices.IsSorted(names) {
		t.Fatalf("sprites not sorted: %v", names)
	}
	if !slices.Contains(names, animation.MascotOpenSprite) {
		t.Fatalf("mascot missing from %v", names)
	}
}

func TestLogoIsCached(t *testing.T) {
	first := MustLogo(AppLogo)
	second := MustLogo(AppLogo)
	if first != second {
		t.Fatalf("expected cached resource")
	}
	if first.Name() != AppLogo {
		t.Fatalf("unexpected resource name %q", first.Name())
	}
	if !strings.Contains(string(first.Content()), "<svg") {
		t.Fatalf("logo is not svg")
	}
	if _, err := Logo("missing.svg"); err == nil {
		t.Fatalf("expected error for missing logo")
	}
}
