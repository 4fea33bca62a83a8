package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Replay records and plays back toggle commands
type Replay struct {
	Commands []Command
	file     *os.File
	writer   *bufio.Writer
}

// NewRecorder creates a replay file for recording
func NewRecorder(path string) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	return &Replay{
		file:   f,
		writer: bufio.NewWriter(f),
	}, nil
}

// Record keeps a command and writes it to the file, if any
func (r *Replay) Record(cmd Command) error {
	r.Commands = append(r.Commands, cmd)
	if r.writer == nil {
		return nil
	}
	return cmd.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	if r.writer != nil {
		if err := r.writer.Flush(); err != nil {
			r.file.Close()
			return err
		}
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Load loads a replay file
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes commands until the end of r. A truncated trailing command
// is an error.
func Read(r io.Reader) (*Replay, error) {
	replay := &Replay{}
	reader := bufio.NewReader(r)
	for {
		var cmd Command
		err := cmd.Decode(reader)
		if errors.Is(err, io.EOF) {
			return replay, nil
		}
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", len(replay.Commands), err)
		}
		replay.Commands = append(replay.Commands, cmd)
	}
}

// CommandsForTick returns all commands at a given tick during playback
func (r *Replay) CommandsForTick(tick uint64) []Command {
	var result []Command
	for _, c := range r.Commands {
		if c.Tick == tick {
			result = append(result, c)
		}
	}
	return result
}
