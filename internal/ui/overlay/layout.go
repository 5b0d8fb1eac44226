package overlay

import "fyne.io/fyne/v2"

// rightPanelLayout places the sprite in a square above the control row.
type rightPanelLayout struct{}

func (layout *rightPanelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	image := objects[0]
	controls := objects[1]

	controlsSize := controls.MinSize()
	controlsHeight := controlsSize.Height
	if controlsHeight > size.Height*0.3 {
		controlsHeight = size.Height * 0.3
	}
	imageAreaHeight := size.Height - controlsHeight
	if imageAreaHeight < 0 {
		imageAreaHeight = 0
	}

	margin := imageAreaHeight * 0.05
	side := imageAreaHeight * 0.90
	if side > size.Width-margin {
		side = size.Width - margin
	}
	if side < 0 {
		side = 0
	}
	x := (size.Width - side) / 2
	image.Move(fyne.NewPos(x, margin))
	image.Resize(fyne.NewSize(side, side))

	controlsWidth := controlsSize.Width
	if controlsWidth > size.Width {
		controlsWidth = size.Width
	}
	controlsX := size.Width - margin - controlsWidth
	if controlsX < 0 {
		controlsX = 0
	}
	controlsY := imageAreaHeight + (controlsHeight-controlsSize.Height)/2
	if controlsY < 0 {
		controlsY = 0
	}
	controls.Move(fyne.NewPos(controlsX, controlsY))
	controls.Resize(fyne.NewSize(controlsWidth, controlsSize.Height))
}

func (layout *rightPanelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	imageMin := objects[0].MinSize()
	controlsMin := objects[1].MinSize()
	width := imageMin.Width
	if controlsMin.Width > width {
		width = controlsMin.Width
	}
	return fyne.NewSize(width, imageMin.Height+controlsMin.Height)
}

// leftPanelLayout stacks title, message and tip at the top with the
// countdown pinned to the bottom.
type leftPanelLayout struct{}

func (layout *leftPanelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	pad := size.Height * 0.05
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	y := pad
	gaps := []float32{6, 10, 0}
	for index, object := range objects[:3] {
		height := object.MinSize().Height
		object.Move(fyne.NewPos(pad, y))
		object.Resize(fyne.NewSize(availableWidth, height))
		y += height + gaps[index]
	}

	countdown := objects[3]
	countdownSize := countdown.MinSize()
	countdownY := size.Height - pad - countdownSize.Height
	if countdownY < y {
		countdownY = y
	}
	countdown.Move(fyne.NewPos(pad, countdownY))
	countdown.Resize(countdownSize)
}

func (layout *leftPanelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects[:4] {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height+40)
}
