package main

import (
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/oukeidos/mnmlrec/internal/permission"
	"github.com/oukeidos/mnmlrec/internal/prefs"
	"github.com/oukeidos/mnmlrec/internal/prompt"
)

type grantStore interface {
	permission.Checker
	Status() (bool, error)
	Grant() error
	Revoke() error
}

var (
	newGrantStore = func() grantStore { return permission.NewKeyring(permission.Overlay) }
	newConfirmer  = func(cmd *cobra.Command) *prompt.Confirmer {
		c := prompt.DefaultConfirmer()
		c.In = cmd.InOrStdin()
		c.Out = cmd.OutOrStdout()
		return c
	}
)

func openStore(opts *rootOptions) (*prefs.FileStore, error) {
	path := opts.prefsPath
	if path == "" {
		p, err := prefs.DefaultPath(opts.appID)
		if err != nil {
			return nil, err
		}
		path = p
	}
	return prefs.OpenFileStore(path)
}

func columnWidth(cells []string) int {
	width := 0
	for _, c := range cells {
		if w := uniseg.StringWidth(c); w > width {
			width = w
		}
	}
	return width
}

// padRight pads s to width terminal cells.
func padRight(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
