package protocol

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Event is a client event aimed at one hydrated element.
type Event struct {
	// HID is the hydration ID of the target element, e.g. "h1".
	HID string `json:"hid"`

	// Event is the DOM event name without "on", e.g. "click".
	Event string `json:"event"`
}

// Render carries a freshly rendered view of the session root.
type Render struct {
	// Seq increases by one for every render the session sends.
	Seq uint64 `json:"seq"`

	// HTML is the root component markup.
	HTML string `json:"html"`
}

// ErrorMessage reports a recoverable problem to the client.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EncodeEvent encodes ev as an Event frame.
func EncodeEvent(ev Event) ([]byte, error) {
	return encode(FrameEvent, ev)
}

// EncodeRender encodes r as a Render frame.
func EncodeRender(r Render) ([]byte, error) {
	return encode(FrameRender, r)
}

// EncodeError encodes e as an Error frame.
func EncodeError(e ErrorMessage) ([]byte, error) {
	return encode(FrameError, e)
}

func encode(ft FrameType, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", ft, err)
	}
	f := Frame{Type: ft, Flags: FlagFinal, Payload: payload}
	return f.Encode()
}

// DecodeEvent decodes an Event frame.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	err := decode(data, FrameEvent, &ev)
	if err == nil && (ev.HID == "" || ev.Event == "") {
		err = fmt.Errorf("protocol: event missing hid or event name")
	}
	return ev, err
}

// DecodeRender decodes a Render frame.
func DecodeRender(data []byte) (Render, error) {
	var r Render
	err := decode(data, FrameRender, &r)
	return r, err
}

// DecodeError decodes an Error frame.
func DecodeError(data []byte) (ErrorMessage, error) {
	var e ErrorMessage
	err := decode(data, FrameError, &e)
	return e, err
}

func decode(data []byte, want FrameType, v any) error {
	f, err := DecodeFrame(data)
	if err != nil {
		return err
	}
	if f.Type != want {
		return fmt.Errorf("protocol: expected %s frame, got %s", want, f.Type)
	}
	if err := json.Unmarshal(f.Payload, v); err != nil {
		return fmt.Errorf("protocol: decode %s: %w", want, err)
	}
	return nil
}
