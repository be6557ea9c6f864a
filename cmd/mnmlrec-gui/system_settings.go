package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/mnmlrec/internal/logger"
	"github.com/oukeidos/mnmlrec/internal/permission"
)

// openSystemSettings stands in for the platform permission screen. The
// outcome is reported when the window closes.
func (ra *recApp) openSystemSettings(req permission.Request) error {
	if ra.systemWin != nil {
		ra.systemWin.Close()
	}

	w := ra.app.NewWindow("System settings")
	allow := widget.NewCheck("Allow display over other apps", nil)
	allow.SetChecked(ra.grants.Granted())
	ra.systemWin = w
	ra.systemAllow = allow

	w.SetContent(container.NewVBox(
		widget.NewLabelWithStyle(req.AppID, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		allow,
		widget.NewButton("Done", w.Close),
	))
	w.SetOnClosed(func() {
		if ra.systemWin == w {
			ra.systemWin = nil
			ra.systemAllow = nil
		}
		ra.finishSystemSettings(req, allow.Checked)
	})
	w.Resize(fyne.NewSize(360, 160))
	w.Show()
	logger.Info("Opened overlay permission settings", "token", req.Token.String())
	return nil
}

func (ra *recApp) finishSystemSettings(req permission.Request, allowed bool) {
	code := permission.ResultCanceled
	var err error
	if allowed {
		err = ra.grants.Grant()
		if err == nil {
			code = permission.ResultOK
		}
	} else if ra.grants.Granted() {
		err = ra.grants.Revoke()
	}
	if err != nil {
		logger.Error("Failed to store overlay permission", "error", err)
	}

	res := permission.Result{Token: req.Token, Code: code}
	ra.dispatch(func() {
		ra.screen.HandlePermissionResult(res)
		ra.refreshStatus()
	})
}
