package notify

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/blinkrail/blinkrail/internal/apperr"
)

var (
	errParseCommand = &apperr.Error{
		Message: "unable to parse session command",
	}
	errRunCommand = &apperr.Error{
		Message: "session command %q failed: %s",
	}
)

// Command runs a user supplied command line after a session completes. The
// session id and rewards are passed through the environment.
type Command struct {
	Line string
}

func (c *Command) Name() string {
	return "command"
}

func (c *Command) Send(ctx context.Context, n Notification) error {
	cmdSlice, err := shellquote.Split(c.Line)
	if err != nil {
		return errParseCommand.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(
		os.Environ(),
		"BLINKRAIL_SESSION_ID="+n.SessionID,
		"BLINKRAIL_SPARKS="+strconv.Itoa(n.Rewards.FocusSparks),
		"BLINKRAIL_XP="+strconv.Itoa(n.Rewards.ExperiencePoints),
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		return errRunCommand.Fmt(name, bytes.TrimSpace(stderr.Bytes())).Wrap(err)
	}

	return nil
}
