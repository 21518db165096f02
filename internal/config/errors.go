package config

import "github.com/blinkrail/blinkrail/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s must be between %v and %v",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid duration %q",
	}

	errInvalidMultiplier = &apperr.Error{
		Message: "bonus multiplier must be greater than 1 (got %v)",
	}

	errInvalidXP = &apperr.Error{
		Message: "experience points per spark must be positive (got %d)",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errUnknownSound = &apperr.Error{
		Message: "sound file not found: %s",
	}

	errMissingEndpoint = &apperr.Error{
		Message: "telemetry is enabled but no endpoint is configured",
	}
)
