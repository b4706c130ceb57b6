package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecPlayer shells out to an external command to play audio. The audio
// bytes are written to a temp file whose path replaces the {file}
// placeholder in the command's arguments, or is appended when no
// placeholder is present.
type ExecPlayer struct {
	Command string
	Args    []string
}

// DefaultPlayerCandidates lists commands probed by DetectPlayer, in
// preference order.
var DefaultPlayerCandidates = [][]string{
	{"mpv", "--no-terminal", "--really-quiet", "{file}"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "{file}"},
	{"afplay", "{file}"},
	{"aplay", "-q", "{file}"},
}

// DetectPlayer finds the first available playback command on PATH.
// It returns nil when none exists.
func DetectPlayer() *ExecPlayer {
	for _, cand := range DefaultPlayerCandidates {
		if _, err := exec.LookPath(cand[0]); err == nil {
			return &ExecPlayer{Command: cand[0], Args: cand[1:]}
		}
	}
	return nil
}

// ParsePlayerCommand builds an ExecPlayer from a configured command
// line such as "mpv --really-quiet {file}".
func ParsePlayerCommand(cmdline string) *ExecPlayer {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil
	}
	return &ExecPlayer{Command: fields[0], Args: fields[1:]}
}

// Play writes data to a temp file and runs the configured command,
// killing it if ctx is cancelled.
func (p *ExecPlayer) Play(ctx context.Context, data []byte) error {
	f, err := os.CreateTemp("", "vocadrill-audio-*.mp3")
	if err != nil {
		return fmt.Errorf("create audio temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write audio temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close audio temp file: %w", err)
	}

	args := make([]string, 0, len(p.Args)+1)
	replaced := false
	for _, a := range p.Args {
		if strings.Contains(a, "{file}") {
			a = strings.ReplaceAll(a, "{file}", path)
			replaced = true
		}
		args = append(args, a)
	}
	if !replaced {
		args = append(args, path)
	}

	cmd := exec.CommandContext(ctx, p.Command, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("play audio with %s: %w", p.Command, err)
	}
	return nil
}
