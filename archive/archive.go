// Package archive implements the interactive frame archiver: capture one
// frame, then wait for the operator to continue or exit.
package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DaniruKun/aruco-cam/utils"
	"github.com/rs/zerolog"
)

// ErrCapture wraps any failure to grab or store a frame
var ErrCapture = errors.New("frame capture failed")

type State int

const (
	StateCapturing State = iota
	StateAwaitingCommand
	StateExited
)

func (s State) String() string {
	switch s {
	case StateCapturing:
		return "capturing"
	case StateAwaitingCommand:
		return "awaiting-command"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Operator commands
const (
	CommandContinue = "c"
	CommandExit     = "e"
)

const (
	prompt = "Press 'c' for continue or 'e' to exit..."
	usage  = "Use keys 'c' or 'e'"
)

// FrameGrabber captures a single frame and stores it at path.
type FrameGrabber interface {
	Grab(path string) error
}

// Archiver is the capture / await-command state machine. It is not safe for
// concurrent use.
type Archiver struct {
	Dir    string
	Prefix string

	index   int
	state   State
	grabber FrameGrabber
	input   *bufio.Scanner
	prompt  io.Writer
	log     zerolog.Logger
}

// New returns an Archiver in the capturing state at startIndex. Commands are
// read line by line from in; prompts are written to out.
func New(dir, prefix string, startIndex int, grabber FrameGrabber, in io.Reader, out io.Writer, log zerolog.Logger) *Archiver {
	return &Archiver{
		Dir:     dir,
		Prefix:  prefix,
		index:   startIndex,
		state:   StateCapturing,
		grabber: grabber,
		input:   bufio.NewScanner(in),
		prompt:  out,
		log:     log,
	}
}

func (a *Archiver) Index() int   { return a.index }
func (a *Archiver) State() State { return a.state }

// Step performs exactly one transition.
func (a *Archiver) Step() error {
	switch a.state {
	case StateCapturing:
		path := utils.CapturePath(a.Dir, a.Prefix, a.index)
		if err := a.grabber.Grab(path); err != nil {
			a.state = StateExited
			return fmt.Errorf("%w: %s: %v", ErrCapture, path, err)
		}
		a.log.Info().Str("file", utils.CaptureFilename(a.Prefix, a.index)).Msg("captured")
		a.state = StateAwaitingCommand

	case StateAwaitingCommand:
		fmt.Fprintln(a.prompt, prompt)
		if !a.input.Scan() {
			if err := a.input.Err(); err != nil {
				a.state = StateExited
				return fmt.Errorf("reading command: %w", err)
			}
			a.log.Debug().Msg("end of input")
			a.state = StateExited
			return nil
		}

		switch strings.TrimSpace(a.input.Text()) {
		case CommandExit:
			a.state = StateExited
		case CommandContinue:
			a.index++
			a.state = StateCapturing
		default:
			fmt.Fprintln(a.prompt, usage)
		}

	case StateExited:
	}
	return nil
}

// Run steps until the archiver exits or a capture fails.
func (a *Archiver) Run() error {
	for a.state != StateExited {
		if err := a.Step(); err != nil {
			return err
		}
	}
	return nil
}
