// Package dictation models speech-to-text input as an external asynchronous
// producer. A recognizer delivers discrete events over a channel; the rest of
// the application only ever consumes the recognized text as raw input to the
// task-creation path, exactly like any other text entry.
package dictation

import (
	"errors"
)

type ErrorKind string

const (
	ErrNoSpeech     ErrorKind = "no-speech"
	ErrAudioCapture ErrorKind = "audio-capture"
	ErrNotAllowed   ErrorKind = "not-allowed"
	ErrNetwork      ErrorKind = "network"
	ErrOther        ErrorKind = "other"
)

// Message returns user-facing status text for a failed recognition.
func (k ErrorKind) Message() string {
	switch k {
	case ErrNoSpeech:
		return "No speech detected. Please try again."
	case ErrAudioCapture:
		return "Microphone not found or not accessible."
	case ErrNotAllowed:
		return "Microphone access denied."
	case ErrNetwork:
		return "Network error occurred."
	default:
		return "Speech recognition failed."
	}
}

type EventKind string

const (
	EventStart  EventKind = "start"
	EventResult EventKind = "result"
	EventError  EventKind = "error"
	EventEnd    EventKind = "end"
)

type Event struct {
	Kind EventKind
	Text string    // set for EventResult
	Err  ErrorKind // set for EventError
}

// Recognizer is the consumed dictation interface. One recognition session
// emits start, then result or error, then end. Events arrive on the channel
// returned by Events for the lifetime of the recognizer.
type Recognizer interface {
	Start() error
	Stop()
	Events() <-chan Event
}

var ErrUnavailable = errors.New("dictation: recognizer not available")

// Noop stands in when no transcription command is configured; Start reports
// the recognizer unavailable and no events are ever emitted.
type Noop struct {
	events chan Event
}

func NewNoop() *Noop {
	return &Noop{events: make(chan Event)}
}

func (n *Noop) Start() error { return ErrUnavailable }

func (n *Noop) Stop() {}

func (n *Noop) Events() <-chan Event { return n.events }
