package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv(envName, "dev")

	p := &Paths{
		configFileName: "config.yml",
		dbFileName:     "blinkrail.db",
		ledgerFileName: "ledger.db",
		logFileName:    "blinkrail.log",
	}

	p.applyEnvironmentOverrides()

	assert.Equal(t, "config_dev.yml", p.configFileName)
	assert.Equal(t, "blinkrail_dev.db", p.dbFileName)
	assert.Equal(t, "ledger_dev.db", p.ledgerFileName)
	assert.Equal(t, "blinkrail_dev.log", p.logFileName)
}

func TestNoOverridesWithoutEnv(t *testing.T) {
	t.Setenv(envName, "  ")

	p := &Paths{configFileName: "config.yml"}

	p.applyEnvironmentOverrides()

	assert.Equal(t, "config.yml", p.configFileName)
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "bell", StripExtension("bell.ogg"))
	assert.Equal(t, filepath.Join("sounds", "rain"), StripExtension(filepath.Join("sounds", "rain.mp3")))
	assert.Equal(t, "plain", StripExtension("plain"))
}
