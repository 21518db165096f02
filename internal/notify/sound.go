package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/blinkrail/blinkrail/internal/apperr"
	"github.com/blinkrail/blinkrail/internal/pathutil"
)

var (
	errInvalidSoundFormat = &apperr.Error{
		Message: "sound file must be in mp3, ogg, flac, or wav format",
	}
	errOpenSound = &apperr.Error{
		Message: "unable to open sound file %s",
	}
	errPlaySound = &apperr.Error{
		Message: "unable to play sound file %s",
	}
)

// SoundFormats lists the supported audio file extensions.
var SoundFormats = []string{".mp3", ".ogg", ".flac", ".wav"}

// Sound plays an audio file and waits for it to finish.
type Sound struct {
	Path string
}

func (s *Sound) Name() string {
	if s.Path == "" {
		return "sound"
	}

	return "sound (" + pathutil.StripExtension(filepath.Base(s.Path)) + ")"
}

// decode returns an audio stream for the sound file.
func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".ogg":
		return vorbis.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, errInvalidSoundFormat
	}
}

func (s *Sound) Send(ctx context.Context, _ Notification) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return errOpenSound.Fmt(s.Path).Wrap(err)
	}

	defer func() {
		_ = f.Close()
	}()

	stream, format, err := decode(f)
	if err != nil {
		return errPlaySound.Fmt(s.Path).Wrap(err)
	}

	defer stream.Close()

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return errPlaySound.Fmt(s.Path).Wrap(err)
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}

	return nil
}
