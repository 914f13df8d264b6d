//go:build !nogui

package gui

import (
	"fmt"
	"image/color"

	"brightd/internal/backlight"
	"brightd/internal/brightness"
	"brightd/internal/config"
	"brightd/internal/log"
	"brightd/internal/screen"
	"brightd/internal/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	controller *brightness.Controller
	registry   *brightness.Registry
	state      *tray.State
	hasTray    bool

	views         map[int]*monitorView
	monitorStack  *fyne.Container
	presetBox     *fyne.Container
	saverCheck    *widget.Check
	monitorSelect *widget.Select
	statusLabel   *widget.Label
	monitorNames  map[string]int

	screenSize func() screen.Size

	// Theme settings
	accentColor color.NRGBA
	bgColor     color.NRGBA
}

// NewApp builds the window and tray for provider. fyneApp is normally
// app.NewWithID; tests pass fyne's test app.
func NewApp(fyneApp fyne.App, cfg *config.Config, provider backlight.Provider) *App {
	a := &App{
		fyneApp:      fyneApp,
		cfg:          cfg,
		views:        make(map[int]*monitorView),
		monitorNames: make(map[string]int),
		screenSize:   func() screen.Size { return screen.Detect(screen.DefaultDRMDir) },
		accentColor:  color.NRGBA{R: 255, G: 196, B: 0, A: 255},
		bgColor:      color.NRGBA{R: 18, G: 18, B: 18, A: 255},
	}

	icon := fyne.NewStaticResource("brightd.png", tray.Icon())
	fyneApp.SetIcon(icon)

	a.mainWindow = fyneApp.NewWindow("Brightness Controller")
	a.mainWindow.SetIcon(icon)
	a.mainWindow.SetMaster()
	a.mainWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	syncer := brightness.NewSynchronizer(provider, brightness.Clamp(cfg.Levels.Fallback))
	a.registry = syncer.Initialize(a.newView)
	a.controller = brightness.NewController(syncer, cfg)

	a.state = tray.NewState(&fyneWindow{app: fyneApp, win: a.mainWindow}, false)
	// Closing the window sends it back to the tray
	a.mainWindow.SetCloseIntercept(a.state.Hide)

	a.setupMainWindow()
	a.setupShortcuts()
	a.setupSystemTray()

	return a
}

func (a *App) newView(m backlight.Monitor, initial brightness.Level) brightness.View {
	v := newMonitorView(m, initial, a.onSlide)
	a.views[m.Index] = v
	return v
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Controller returns the brightness controller behind the window.
func (a *App) Controller() *brightness.Controller {
	return a.controller
}

// State returns the window state shared with the tray.
func (a *App) State() *tray.State {
	return a.state
}

// Run shows the window unless configured to start hidden, then runs the
// event loop until Exit.
func (a *App) Run() {
	if !a.cfg.StartHidden || !a.hasTray {
		a.state.Show()
	}
	a.fyneApp.Run()
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	title := canvas.NewText("Brightness Controller", a.accentColor)
	title.TextSize = 22
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	a.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	hideButton := widget.NewButton("Hide", a.state.Hide)
	settingsButton := widget.NewButton("Settings", a.showSettings)

	var body fyne.CanvasObject
	if a.cfg.Layout == config.LayoutMulti {
		body = a.createMultiLayout()
	} else {
		body = a.createSingleLayout()
	}

	content := container.NewVBox(
		title,
		canvas.NewLine(a.accentColor),
		body,
		layout.NewSpacer(),
		a.statusLabel,
		container.NewCenter(container.NewHBox(settingsButton, hideButton)),
	)

	background := canvas.NewRectangle(a.bgColor)
	a.mainWindow.SetContent(container.NewStack(background, container.NewPadded(content)))
}

// createMultiLayout shows one slider per monitor.
func (a *App) createMultiLayout() fyne.CanvasObject {
	box := container.NewVBox()
	for _, b := range a.registry.All() {
		box.Add(a.views[b.Monitor.Index].content)
	}
	return box
}

// createSingleLayout shows the selected monitor's slider with presets,
// battery saver and a monitor selector.
func (a *App) createSingleLayout() fyne.CanvasObject {
	a.monitorStack = container.NewStack()
	options := make([]string, 0, a.registry.Len())
	for _, b := range a.registry.All() {
		v := a.views[b.Monitor.Index]
		a.monitorStack.Add(v.content)

		name := monitorOption(b.Monitor)
		a.monitorNames[name] = b.Monitor.Index
		options = append(options, name)
	}
	a.showSelected()

	a.presetBox = container.NewHBox()
	a.rebuildPresets()

	a.saverCheck = widget.NewCheck("Battery Saver Mode", func(on bool) {
		res := a.controller.SetBatterySaver(on)
		a.report(res)
		if on {
			a.showNotification("Battery saver on", fmt.Sprintf("Brightness limited to %s", res.Requested))
		}
	})

	a.monitorSelect = widget.NewSelect(options, nil)
	if sel, ok := a.registry.Get(a.controller.Selected()); ok {
		a.monitorSelect.Selected = monitorOption(sel.Monitor)
	}
	a.monitorSelect.OnChanged = func(name string) {
		index, ok := a.monitorNames[name]
		if !ok {
			return
		}
		a.report(a.controller.SelectMonitor(index))
		a.showSelected()
	}

	return container.NewVBox(
		a.monitorStack,
		container.NewCenter(a.presetBox),
		container.NewCenter(a.saverCheck),
		container.NewHBox(layout.NewSpacer(), widget.NewLabel("Select Monitor:"), a.monitorSelect, layout.NewSpacer()),
	)
}

func monitorOption(m backlight.Monitor) string {
	if m.Name == "" {
		return fmt.Sprintf("Monitor %d", m.Index)
	}
	return fmt.Sprintf("Monitor %d (%s)", m.Index, m.Name)
}

// showSelected makes only the selected monitor's controls visible.
func (a *App) showSelected() {
	selected := a.controller.Selected()
	for index, v := range a.views {
		if index == selected {
			v.content.Show()
		} else {
			v.content.Hide()
		}
	}
	if a.monitorStack != nil {
		a.monitorStack.Refresh()
	}
}

func (a *App) rebuildPresets() {
	if a.presetBox == nil {
		return
	}
	a.presetBox.RemoveAll()
	for _, p := range a.controller.Presets() {
		name := p.Name
		a.presetBox.Add(widget.NewButton(name, func() { a.applyPreset(name) }))
	}
	a.presetBox.Refresh()
}

// UpdateConfig copies cfg into the window's configuration and applies it.
// It must run on the UI goroutine; use ReloadConfig from anywhere else.
func (a *App) UpdateConfig(cfg *config.Config) {
	a.cfg.Adopt(cfg)
	a.controller.UpdateConfig(a.cfg)
	a.rebuildPresets()
}

// ReloadConfig schedules UpdateConfig on the UI goroutine. The config
// watcher calls it from its own goroutine.
func (a *App) ReloadConfig(cfg *config.Config) {
	fyne.Do(func() {
		a.UpdateConfig(cfg)
	})
}

// ShowReloadError reports a rejected config edit in the status line.
func (a *App) ShowReloadError(err error) {
	fyne.Do(func() {
		a.statusLabel.SetText(fmt.Sprintf("Configuration not reloaded: %v", err))
	})
}

func (a *App) onSlide(index, level int) {
	a.report(a.controller.Synchronizer().SetLevel(index, level))
}

func (a *App) applyPreset(name string) {
	res, err := a.controller.ApplyPreset(name)
	if err != nil {
		log.LogWithError(err).Warn("Preset not applied")
		a.statusLabel.SetText(err.Error())
		return
	}
	a.report(res)
}

// adjust moves the selected monitor by steps keyboard steps.
func (a *App) adjust(steps int) {
	a.report(a.controller.AdjustByDelta(steps * a.controller.Step()))
}

// report shows provider failures in the status line. The monitor controls
// already show the requested level.
func (a *App) report(res brightness.Result) {
	if res.OK() {
		a.statusLabel.SetText("")
		return
	}
	a.statusLabel.SetText(fmt.Sprintf("Monitor %d: hardware did not accept %s", res.Monitor.Index, res.Requested))
}

// setupShortcuts binds Ctrl+Up / Ctrl+Down to the keyboard step.
func (a *App) setupShortcuts() {
	up := &desktop.CustomShortcut{KeyName: fyne.KeyUp, Modifier: fyne.KeyModifierControl}
	down := &desktop.CustomShortcut{KeyName: fyne.KeyDown, Modifier: fyne.KeyModifierControl}
	a.mainWindow.Canvas().AddShortcut(up, func(fyne.Shortcut) { a.adjust(1) })
	a.mainWindow.Canvas().AddShortcut(down, func(fyne.Shortcut) { a.adjust(-1) })
}

// setupSystemTray sets up the system tray icon and menu
func (a *App) setupSystemTray() {
	deskApp, ok := a.fyneApp.(desktop.App)
	if !ok {
		log.Debugf("Driver has no system tray, window stays visible")
		return
	}
	a.hasTray = true

	items := tray.Menu(a.state, tray.MenuOptions{
		Reposition: a.cfg.Reposition,
		ScreenSize: a.screenSize,
		Width:      a.cfg.Window.Width,
		Height:     a.cfg.Window.Height,
		Margin:     a.cfg.Window.Margin,
	})
	menuItems := make([]*fyne.MenuItem, 0, len(items))
	for _, item := range items {
		mi := fyne.NewMenuItem(item.Label, item.Action)
		if item.Label == tray.LabelExit {
			mi.IsQuit = true
		}
		menuItems = append(menuItems, mi)
	}
	deskApp.SetSystemTrayMenu(fyne.NewMenu("Brightness Controller", menuItems...))
	deskApp.SetSystemTrayIcon(fyne.NewStaticResource("tray.png", tray.Icon()))
}

// fyneWindow adapts a fyne window to tray.Window.
type fyneWindow struct {
	app fyne.App
	win fyne.Window
}

func (w *fyneWindow) Show() { w.win.Show() }
func (w *fyneWindow) Hide() { w.win.Hide() }

func (w *fyneWindow) Resize(width, height int) {
	w.win.Resize(fyne.NewSize(float32(width), float32(height)))
	w.win.CenterOnScreen()
}

func (w *fyneWindow) Close() {
	w.win.Close()
	w.app.Quit()
}
