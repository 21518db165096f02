// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const envName = "BLINKRAIL_ENV"

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	ledgerFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	ledgerFilePath string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "blinkrail",
			configFileName: "config.yml",
			dbFileName:     "blinkrail.db",
			ledgerFileName: "ledger.db",
			logFileName:    "blinkrail.log",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func LedgerFilePath() string {
	return Must().ledgerFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envName))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("blinkrail_%s.db", env)
		p.ledgerFileName = fmt.Sprintf("ledger_%s.db", env)
		p.logFileName = fmt.Sprintf("blinkrail_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	// xdg.DataFile creates the parent directories of the returned path
	dataDir, err := xdg.DataFile(filepath.Join(p.configDir, "log", p.logFileName))
	if err != nil {
		return fmt.Errorf("resolving data path: %w", err)
	}

	p.logFilePath = dataDir

	root := filepath.Dir(filepath.Dir(dataDir))

	p.dbFilePath = filepath.Join(root, p.dbFileName)

	p.ledgerFilePath = filepath.Join(root, p.ledgerFileName)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
