package notify

import (
	"context"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
)

// Desktop shows a desktop notification.
type Desktop struct {
	// Icon is an optional path to the notification icon
	Icon string
}

// NewDesktop returns a desktop sink that uses the application icon if one is
// installed in the data directory.
func NewDesktop(appDir string) *Desktop {
	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(appDir, "static", "icon.png"),
	)

	return &Desktop{Icon: pathToIcon}
}

func (d *Desktop) Name() string {
	return "desktop"
}

func (d *Desktop) Send(_ context.Context, n Notification) error {
	return beeep.Notify(n.Title, n.Message, d.Icon)
}
