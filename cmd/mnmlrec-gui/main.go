package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/oukeidos/mnmlrec/internal/logger"
	"github.com/oukeidos/mnmlrec/internal/permission"
	"github.com/oukeidos/mnmlrec/internal/version"
)

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID(version.AppID)
	w := myApp.NewWindow("Controls")
	w.SetMaster()

	if _, err := newRecApp(myApp, w, permission.NewKeyring(permission.Overlay), uiDispatcher("settings")); err != nil {
		logger.Error("Failed to build controls screen", "error", err)
		os.Exit(1)
	}
	w.CenterOnScreen()
	w.ShowAndRun()
}
