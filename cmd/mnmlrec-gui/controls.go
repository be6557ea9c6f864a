package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/mnmlrec/internal/logger"
	"github.com/oukeidos/mnmlrec/internal/permission"
	"github.com/oukeidos/mnmlrec/internal/prefs"
	"github.com/oukeidos/mnmlrec/internal/settings"
	"github.com/oukeidos/mnmlrec/internal/version"
)

type grantStore interface {
	permission.Checker
	Grant() error
	Revoke() error
}

type recApp struct {
	app      fyne.App
	window   fyne.Window
	config   AppConfig
	grants   grantStore
	dispatch settings.Dispatcher
	screen   *settings.Synchronizer

	toggles     map[string]*checkToggle
	statusLabel *widget.Label

	systemWin   fyne.Window
	systemAllow *widget.Check

	// confirm shows the overlay explanation; replaced in tests.
	confirm func(title, message string, done func(bool))
}

func newRecApp(a fyne.App, w fyne.Window, grants grantStore, dispatch settings.Dispatcher) (*recApp, error) {
	ra := &recApp{
		app:      a,
		window:   w,
		config:   loadConfig(a.Preferences()),
		grants:   grants,
		dispatch: dispatch,
		toggles:  make(map[string]*checkToggle),
	}
	ra.confirm = ra.showConfirm

	appID := a.UniqueID()
	if appID == "" {
		appID = version.AppID
	}
	screen, err := settings.NewSynchronizer(settings.Deps{
		Store:     prefs.NewFyneStore(a.Preferences()),
		Checker:   grants,
		Requester: permission.RequesterFunc(ra.openSystemSettings),
		Explainer: settings.ExplainerFunc(ra.explain),
		AppID:     appID,
		Dispatch:  dispatch,
	})
	if err != nil {
		return nil, err
	}
	ra.screen = screen

	rows := []fyne.CanvasObject{}
	for _, def := range prefs.Definitions() {
		tg := newCheckToggle(def.Title)
		ra.toggles[def.Key] = tg
		summary := widget.NewLabel(def.Summary)
		summary.Wrapping = fyne.TextWrapWord
		summary.Importance = widget.LowImportance
		rows = append(rows, tg.check, summary)
	}
	if err := screen.Attach(func(key string) (settings.Toggle, bool) {
		tg, ok := ra.toggles[key]
		return tg, ok
	}); err != nil {
		return nil, err
	}

	ra.statusLabel = widget.NewLabel("")
	ra.refreshStatus()
	revoke := widget.NewButton("Revoke overlay permission", ra.revoke)

	w.SetContent(container.NewVBox(
		container.NewVBox(rows...),
		widget.NewSeparator(),
		ra.statusLabel,
		revoke,
	))
	w.Resize(fyne.NewSize(ra.config.WindowWidth, ra.config.WindowHeight))
	w.SetOnClosed(ra.shutdown)
	return ra, nil
}

func (ra *recApp) explain(done func(bool)) {
	ra.confirm("Display over other apps", permission.OverlayRationale, done)
}

func (ra *recApp) showConfirm(title, message string, done func(bool)) {
	d := dialog.NewConfirm(title, message, done, ra.window)
	d.SetConfirmText("Open settings")
	d.SetDismissText("Not now")
	d.Show()
}

func (ra *recApp) refreshStatus() {
	if ra.grants.Granted() {
		ra.statusLabel.SetText("Display over other apps: granted")
		return
	}
	ra.statusLabel.SetText("Display over other apps: not granted")
}

func (ra *recApp) revoke() {
	if err := ra.grants.Revoke(); err != nil {
		logger.Error("Failed to revoke overlay permission", "error", err)
		dialog.ShowError(err, ra.window)
		return
	}
	ra.refreshStatus()
}

func (ra *recApp) shutdown() {
	ra.screen.Close()
	if ra.systemWin != nil {
		ra.systemWin.Close()
	}
	size := ra.window.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		ra.config.WindowWidth = size.Width
		ra.config.WindowHeight = size.Height
	}
	saveConfig(ra.app.Preferences(), ra.config)
}
