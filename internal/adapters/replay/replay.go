// Package replay reads and writes recorded pointer events as JSON lines, one
// event per line:
//
//	{"kind":"start","x":250,"y":100,"t":"2025-01-02T15:04:05.123Z"}
//	{"kind":"move","x":251,"y":101}
//	{"kind":"end"}
//
// The timestamp is optional. Coordinates are required for start and move
// and omitted for end.
package replay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/okian/circle/internal/domain/geometry"
	"github.com/okian/circle/internal/domain/model"
)

const maxLineBytes = 1 << 20

type record struct {
	Kind model.Kind `json:"kind"`
	X    *float64   `json:"x,omitempty"`
	Y    *float64   `json:"y,omitempty"`
	T    *time.Time `json:"t,omitempty"`
}

// Reader decodes events from a JSON lines stream.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineBytes)
	return &Reader{scanner: s}
}

// Line returns the 1-based number of the last line read.
func (r *Reader) Line() int { return r.line }

// Next returns the next event, or io.EOF once the stream is exhausted.
// Blank lines are skipped.
func (r *Reader) Next() (model.Event, error) {
	for r.scanner.Scan() {
		r.line++
		raw := bytes.TrimSpace(r.scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		return decodeLine(raw, r.line)
	}
	if err := r.scanner.Err(); err != nil {
		return model.Event{}, fmt.Errorf("%w: line %d: %w", ErrDecode, r.line+1, err)
	}
	return model.Event{}, io.EOF
}

func decodeLine(raw []byte, line int) (model.Event, error) {
	var rec record
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return model.Event{}, fmt.Errorf("%w: line %d: %w", ErrDecode, line, err)
	}
	if !rec.Kind.Valid() {
		return model.Event{}, fmt.Errorf("%w: line %d: unknown kind %q", ErrDecode, line, rec.Kind)
	}

	e := model.Event{Kind: rec.Kind}
	if rec.T != nil {
		e.At = *rec.T
	}
	if rec.Kind == model.KindEnd {
		return e, nil
	}
	if rec.X == nil || rec.Y == nil {
		return model.Event{}, fmt.Errorf("%w: line %d: %s event without coordinates", ErrDecode, line, rec.Kind)
	}
	e.X, e.Y = *rec.X, *rec.Y
	if !e.Point().IsFinite() {
		return model.Event{}, fmt.Errorf("%w: line %d: coordinates not finite", ErrDecode, line)
	}
	return e, nil
}

// ReadAll decodes every event in r.
func ReadAll(r io.Reader) ([]model.Event, error) {
	var events []model.Event
	rd := NewReader(r)
	for {
		e, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
}

// Sink accepts decoded events; the event queue satisfies it.
type Sink interface {
	Put(ctx context.Context, e model.Event) error
}

// Pump decodes r into sink until EOF, a decode error or a rejected Put. It
// returns how many events were delivered.
func Pump(ctx context.Context, r io.Reader, sink Sink) (int, error) {
	rd := NewReader(r)
	n := 0
	for {
		e, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := sink.Put(ctx, e); err != nil {
			return n, fmt.Errorf("deliver line %d: %w", rd.Line(), err)
		}
		n++
	}
}

// Writer encodes events as JSON lines.
type Writer struct {
	enc *json.Encoder
}

// NewWriter returns a Writer that appends to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Write encodes one event. A zero timestamp is omitted.
func (w *Writer) Write(e model.Event) error {
	rec := record{Kind: e.Kind}
	if e.Kind != model.KindEnd {
		x, y := e.X, e.Y
		rec.X, rec.Y = &x, &y
	}
	if !e.At.IsZero() {
		at := e.At
		rec.T = &at
	}
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode %s event: %w", e.Kind, err)
	}
	return nil
}

// WriteAll encodes events in order.
func (w *Writer) WriteAll(events []model.Event) error {
	for _, e := range events {
		if err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}

// ReadStroke decodes a JSON array of {"x":..,"y":..} points.
func ReadStroke(r io.Reader) (geometry.Stroke, error) {
	var stroke geometry.Stroke
	if err := json.NewDecoder(r).Decode(&stroke); err != nil {
		return nil, fmt.Errorf("%w: stroke: %w", ErrDecode, err)
	}
	for i, p := range stroke {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: stroke point %d not finite", ErrDecode, i)
		}
	}
	if stroke == nil {
		stroke = geometry.Stroke{}
	}
	return stroke, nil
}
