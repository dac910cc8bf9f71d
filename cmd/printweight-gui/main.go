package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/printweight/internal/loader"
	"github.com/philipparndt/printweight/pkg/estimate"
	"github.com/philipparndt/printweight/pkg/render"
	"github.com/philipparndt/printweight/pkg/stl"
	"github.com/philipparndt/printweight/pkg/watcher"
)

type App struct {
	window    fyne.Window
	model     *stl.Model
	modelPath string
	watcher   *watcher.FileWatcher

	preview     *canvas.Image
	infoLabel   *widget.Label
	resultLabel *widget.Label

	materialSelect *widget.Select
	infillSlider   *widget.Slider
	infillLabel    *widget.Label
	patternSelect  *widget.Select
	layerEntry     *widget.Entry
	wallEntry      *widget.Entry
	topBottomEntry *widget.Entry

	advancedBox *fyne.Container
}

func main() {
	a := app.New()
	w := a.NewWindow("Print Weight Estimator")

	appInstance := &App{
		window: w,
	}

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1100, 750))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Print Weight Estimator")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open an STL or OpenSCAD file to estimate its print weight")

	openButton := widget.NewButton("Open Model File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	model, cleanup, err := loader.Load(filename)
	defer cleanup()
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load model: %w", err), a.window)
		return
	}

	a.model = model
	a.modelPath = filename
	a.setupMainUI()
	a.watchFile(filename)
}

// watchFile re-loads the model when the source file is saved
func (a *App) watchFile(filename string) {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}

	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		fmt.Printf("Warning: file watching unavailable: %v\n", err)
		return
	}

	if err := fw.Watch(filename, func(changed string) {
		fyne.Do(func() {
			a.reloadModel()
		})
	}); err != nil {
		fmt.Printf("Warning: failed to watch %s: %v\n", filename, err)
		fw.Close()
		return
	}

	fw.Start()
	a.watcher = fw
}

func (a *App) reloadModel() {
	model, cleanup, err := loader.Load(a.modelPath)
	defer cleanup()
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to reload model: %w", err), a.window)
		return
	}

	a.model = model
	a.refreshPreview()
	a.updateModelInfo()
	a.updateEstimate()
}

func (a *App) setupMainUI() {
	a.infoLabel = widget.NewLabel("")
	a.resultLabel = widget.NewLabel("")
	a.resultLabel.TextStyle = fyne.TextStyle{Bold: true}

	// Entries must exist before the select and slider below: their
	// initial SetSelected/SetValue fire OnChanged synchronously, which
	// runs updateEstimate and reads the entry texts.
	a.layerEntry = numberEntry("0.3", a.updateEstimate)
	a.wallEntry = numberEntry("1.2", a.updateEstimate)
	a.topBottomEntry = numberEntry("0.8", a.updateEstimate)

	a.materialSelect = widget.NewSelect(materialNames(), func(string) {
		a.updateEstimate()
	})
	a.materialSelect.SetSelected("PLA")

	a.infillLabel = widget.NewLabel("Infill Density: 20%")
	a.infillSlider = widget.NewSlider(0, 100)
	a.infillSlider.Step = 1
	a.infillSlider.OnChanged = func(value float64) {
		a.infillLabel.SetText(fmt.Sprintf("Infill Density: %.0f%%", value))
		a.updateEstimate()
	}
	a.infillSlider.SetValue(20)

	a.patternSelect = widget.NewSelect(estimate.InfillPatterns(), func(string) {})
	a.patternSelect.SetSelected("Grid")

	// Advanced inputs are collected for completeness but the estimate
	// only uses the basic settings above.
	wallCountEntry := numberEntry("3", nil)
	printSpeedEntry := numberEntry("200", nil)
	travelSpeedEntry := numberEntry("125", nil)
	retractionCheck := widget.NewCheck("Enable Retraction", func(bool) {})
	retractionCheck.SetChecked(true)
	supportCheck := widget.NewCheck("Generate Support", func(bool) {})
	adhesionSelect := widget.NewSelect([]string{"None", "Brim", "Raft", "Skirt"}, func(string) {})
	adhesionSelect.SetSelected("Brim")

	a.advancedBox = container.NewVBox(
		widget.NewLabel("Wall Line Count:"), wallCountEntry,
		widget.NewLabel("Print Speed (mm/s):"), printSpeedEntry,
		widget.NewLabel("Travel Speed (mm/s):"), travelSpeedEntry,
		retractionCheck,
		supportCheck,
		widget.NewLabel("Build Plate Adhesion:"), adhesionSelect,
	)
	a.advancedBox.Hide()

	advancedCheck := widget.NewCheck("Advanced mode", func(checked bool) {
		if checked {
			a.advancedBox.Show()
		} else {
			a.advancedBox.Hide()
		}
	})

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	estimateButton := widget.NewButton("Estimate Print Weight", func() {
		a.updateEstimate()
	})

	formPanel := container.NewVBox(
		widget.NewLabel("Model:"),
		widget.NewSeparator(),
		a.infoLabel,
		widget.NewSeparator(),
		widget.NewLabel("Material:"),
		a.materialSelect,
		a.infillLabel,
		a.infillSlider,
		widget.NewLabel("Infill Pattern:"),
		a.patternSelect,
		widget.NewLabel("Layer Height (mm):"),
		a.layerEntry,
		widget.NewLabel("Wall Thickness (mm):"),
		a.wallEntry,
		widget.NewLabel("Top/Bottom Thickness (mm):"),
		a.topBottomEntry,
		advancedCheck,
		a.advancedBox,
		widget.NewSeparator(),
		estimateButton,
		a.resultLabel,
		widget.NewSeparator(),
		openButton,
	)

	formScroll := container.NewVScroll(formPanel)
	formScroll.SetMinSize(fyne.NewSize(320, 0))

	a.preview = canvas.NewImageFromImage(nil)
	a.preview.FillMode = canvas.ImageFillContain
	a.preview.SetMinSize(fyne.NewSize(640, 480))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		formScroll, // right
		a.preview,  // center
	)

	a.window.SetContent(content)

	a.refreshPreview()
	a.updateModelInfo()
	a.updateEstimate()
}

func (a *App) refreshPreview() {
	if a.model == nil {
		return
	}
	a.preview.Image = render.Snapshot(a.model, render.DefaultOptions())
	a.preview.Refresh()
}

func (a *App) updateModelInfo() {
	if a.model == nil {
		return
	}
	volume := a.model.Volume()
	a.infoLabel.SetText(fmt.Sprintf(
		"%s\nTriangles: %d\nMesh Volume: %.2f cm³",
		a.modelPath,
		a.model.TriangleCount(),
		volume/1000,
	))
}

func (a *App) updateEstimate() {
	// The form widgets wire updateEstimate into their OnChanged
	// callbacks, so it can fire while setupMainUI is still building
	// the remaining widgets.
	if a.model == nil || a.resultLabel == nil || a.materialSelect == nil ||
		a.infillSlider == nil || a.layerEntry == nil || a.wallEntry == nil ||
		a.topBottomEntry == nil {
		return
	}

	params, err := a.currentParameters()
	if err != nil {
		a.resultLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	weight, err := estimate.EstimateWeight(a.model.Volume(), params)
	if err != nil {
		a.resultLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	a.resultLabel.SetText(fmt.Sprintf("Approximate Weight: %.2f g", weight))
}

func (a *App) currentParameters() (estimate.PrintParameters, error) {
	density, err := estimate.DensityFor(a.materialSelect.Selected)
	if err != nil {
		return estimate.PrintParameters{}, err
	}

	layer, err := parseEntry(a.layerEntry, "layer height")
	if err != nil {
		return estimate.PrintParameters{}, err
	}
	wall, err := parseEntry(a.wallEntry, "wall thickness")
	if err != nil {
		return estimate.PrintParameters{}, err
	}
	topBottom, err := parseEntry(a.topBottomEntry, "top/bottom thickness")
	if err != nil {
		return estimate.PrintParameters{}, err
	}

	params := estimate.PrintParameters{
		MaterialDensity:      density,
		InfillDensityPercent: a.infillSlider.Value,
		WallThicknessMM:      wall,
		TopBottomThicknessMM: topBottom,
		LayerHeightMM:        layer,
	}
	if err := params.Validate(); err != nil {
		return estimate.PrintParameters{}, err
	}
	return params, nil
}

func numberEntry(initial string, onChanged func()) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(initial)
	if onChanged != nil {
		entry.OnChanged = func(string) {
			onChanged()
		}
	}
	return entry
}

func parseEntry(entry *widget.Entry, name string) (float64, error) {
	value, err := strconv.ParseFloat(entry.Text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, entry.Text)
	}
	return value, nil
}

func materialNames() []string {
	materials := estimate.Materials()
	names := make([]string, 0, len(materials))
	for _, material := range materials {
		names = append(names, material.Name)
	}
	return names
}
