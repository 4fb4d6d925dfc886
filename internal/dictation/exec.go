package dictation

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// ExecRecognizer shells out to a transcription command and treats its stdout
// as the recognized text. Failure modes map onto the error kinds the UI
// reports: a command that cannot start reads as denied access, an empty
// transcript as no speech, and a non-zero exit as a generic failure.
type ExecRecognizer struct {
	command string

	mu        sync.Mutex
	listening bool
	cmd       *exec.Cmd
	events    chan Event
}

func NewExecRecognizer(command string) *ExecRecognizer {
	return &ExecRecognizer{
		command: command,
		events:  make(chan Event, 4),
	}
}

func (r *ExecRecognizer) Events() <-chan Event {
	return r.events
}

// Start launches one recognition session. A session already in flight makes
// Start a no-op; the caller observes progress through the event channel only.
func (r *ExecRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if strings.TrimSpace(r.command) == "" {
		return ErrUnavailable
	}
	if r.listening {
		return nil
	}

	cmd := exec.Command("sh", "-c", r.command)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Start(); err != nil {
		r.events <- Event{Kind: EventError, Err: ErrNotAllowed}
		r.events <- Event{Kind: EventEnd}
		return err
	}
	r.listening = true
	r.cmd = cmd
	r.events <- Event{Kind: EventStart}

	go func() {
		err := cmd.Wait()
		r.mu.Lock()
		stopped := !r.listening
		r.listening = false
		r.cmd = nil
		r.mu.Unlock()

		switch {
		case stopped:
			// Stop killed the process; end without a result.
		case err != nil:
			r.events <- Event{Kind: EventError, Err: classify(err)}
		default:
			text := strings.TrimSpace(stdout.String())
			if text == "" {
				r.events <- Event{Kind: EventError, Err: ErrNoSpeech}
			} else {
				r.events <- Event{Kind: EventResult, Text: text}
			}
		}
		r.events <- Event{Kind: EventEnd}
	}()
	return nil
}

// Stop cancels an in-flight session. Stopping an idle recognizer is a no-op.
func (r *ExecRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.listening || r.cmd == nil {
		return
	}
	r.listening = false
	if r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
	}
}

func classify(err error) ErrorKind {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ErrOther
	}
	return ErrAudioCapture
}
