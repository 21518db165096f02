// Package static embeds the notification icon and installs it in the user's
// data directory
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/blinkrail/blinkrail/internal/osutil"
)

const (
	filesDir = "files"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files to <data dir>/<appDir>/static so that
// desktop notifications can find them. Files that already exist are left
// alone.
func Install(appDir string) error {
	return install(embeddedFiles, appDir, xdg.DataFile)
}

func install(
	files fs.FS,
	appDir string,
	dataFile func(relPath string) (string, error),
) error {
	return fs.WalkDir(
		files,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := fs.ReadFile(files, path)
			if err != nil {
				return err
			}

			stripped := strings.TrimPrefix(path, filesDir+"/")

			destPath, err := dataFile(filepath.Join(appDir, "static", stripped))
			if err != nil {
				return err
			}

			if _, err := os.Stat(destPath); !os.IsNotExist(err) {
				return nil
			}

			err = os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission)
			if err != nil {
				return err
			}

			return os.WriteFile(destPath, b, osutil.FilePermission)
		},
	)
}
