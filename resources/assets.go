// Package resources embeds the application artwork.
package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
)

// AppLogo is the application icon file name.
const AppLogo = "pomotray.svg"

//go:embed sprites/*.svg logo/*.svg
var assets embed.FS

var (
	cacheMu sync.Mutex
	cache   = map[string]fyne.Resource{}
)

// Sprite returns the overlay sprite named fileName.
func Sprite(fileName string) (fyne.Resource, error) {
	return load(path.Join("sprites", fileName))
}

// MustSprite is Sprite for embedded names known at build time.
func MustSprite(fileName string) fyne.Resource {
	return mustLoad(Sprite(fileName))
}

// Logo returns the logo named fileName.
func Logo(fileName string) (fyne.Resource, error) {
	return load(path.Join("logo", fileName))
}

// MustLogo is Logo for embedded names known at build time.
func MustLogo(fileName string) fyne.Resource {
	return mustLoad(Logo(fileName))
}

// Sprites lists the embedded sprite file names, sorted.
func Sprites() []string {
	entries, err := fs.ReadDir(assets, "sprites")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func load(name string) (fyne.Resource, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if resource, ok := cache[name]; ok {
		return resource, nil
	}

	data, err := assets.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", name, err)
	}
	resource := fyne.NewStaticResource(path.Base(name), data)
	cache[name] = resource
	return resource, nil
}

func mustLoad(resource fyne.Resource, err error) fyne.Resource {
	if err != nil {
		panic(err)
	}
	return resource
}
