// Package timefile reads and writes timeline event lists as YAML.
//
// A file names a default calendar and lists events with civil start and end
// times in that calendar:
//
//	calendar: gregorian
//	events:
//	  - uid: 0b6f3b52-7c1f-4d5e-9a53-7d1f2f0c1b8e
//	    text: Battle
//	    category: war
//	    start: "2013-07-07 00:00:00"
//	    end: "2013-07-08 12:00:00"
//	    revision: 3
//
// An event may carry its own calendar key. A missing end means a point
// event; a missing uid gets one on import. Times are converted onto the
// linear axis on read, so events entered in different calendars interleave
// correctly once stored.
package timefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/datetime"
	"github.com/tlcal/tlcal/pkg/model"
)

// DefaultCalendar is used when neither the file nor an event names one.
const DefaultCalendar = "gregorian"

// ErrEmpty is returned by Decode for a document with no content.
var ErrEmpty = errors.New("timeline file is empty")

// File is the document layout.
type File struct {
	Calendar string  `yaml:"calendar,omitempty"`
	Events   []Entry `yaml:"events"`
}

// Entry is one event as written in a file.
type Entry struct {
	UID      string `yaml:"uid,omitempty"`
	Text     string `yaml:"text"`
	Category string `yaml:"category,omitempty"`
	Calendar string `yaml:"calendar,omitempty"`
	Start    string `yaml:"start"`
	End      string `yaml:"end,omitempty"`
	Revision int64  `yaml:"revision,omitempty"`
}

// Decode reads a document and converts its entries to events. Unknown keys
// are rejected so that typos do not silently drop data.
func Decode(r io.Reader) ([]model.Event, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode timeline file: %w", err)
	}
	return f.ToEvents()
}

// ToEvents converts every entry, failing on the first invalid one.
func (f File) ToEvents() ([]model.Event, error) {
	events := make([]model.Event, 0, len(f.Events))
	for i, entry := range f.Events {
		e, err := entry.toEvent(f.Calendar)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i+1, entry.Text, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func (entry Entry) toEvent(fileCal string) (model.Event, error) {
	name := firstNonEmpty(entry.Calendar, fileCal, DefaultCalendar)
	cal, err := calendar.Lookup(name)
	if err != nil {
		return model.Event{}, err
	}
	start, err := datetime.ParseIn(cal, entry.Start)
	if err != nil {
		return model.Event{}, fmt.Errorf("start: %w", err)
	}
	end := start
	if entry.End != "" {
		if end, err = datetime.ParseIn(cal, entry.End); err != nil {
			return model.Event{}, fmt.Errorf("end: %w", err)
		}
	}
	e := model.Event{
		UID:      entry.UID,
		Calendar: cal.Name(),
		Start:    start.Time,
		End:      end.Time,
		Text:     entry.Text,
		Category: entry.Category,
		Revision: entry.Revision,
	}
	if err := e.Validate(); err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// FromEvents builds a document with calName as the file calendar. Events
// entered in another calendar keep it as a per-event key.
func FromEvents(calName string, events []model.Event) (File, error) {
	f := File{Calendar: calName, Events: make([]Entry, 0, len(events))}
	for _, e := range events {
		name := firstNonEmpty(e.Calendar, calName, DefaultCalendar)
		cal, err := calendar.Lookup(name)
		if err != nil {
			return File{}, fmt.Errorf("event %s: %w", e.UID, err)
		}
		start, err := datetime.FromTimeIn(cal, e.Start)
		if err != nil {
			return File{}, fmt.Errorf("event %s start: %w", e.UID, err)
		}
		entry := Entry{
			UID:      e.UID,
			Text:     e.Text,
			Category: e.Category,
			Start:    start.Text,
			Revision: e.Revision,
		}
		if name != calName {
			entry.Calendar = name
		}
		if e.End != e.Start {
			end, err := datetime.FromTimeIn(cal, e.End)
			if err != nil {
				return File{}, fmt.Errorf("event %s end: %w", e.UID, err)
			}
			entry.End = end.Text
		}
		f.Events = append(f.Events, entry)
	}
	return f, nil
}

// Encode writes events as a document with calName as the file calendar.
func Encode(w io.Writer, calName string, events []model.Event) error {
	f, err := FromEvents(calName, events)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode timeline file: %w", err)
	}
	return enc.Close()
}

// ReadFile decodes the file at path.
func ReadFile(path string) ([]model.Event, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	events, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// WriteFile encodes events to path, replacing any existing file.
func WriteFile(path, calName string, events []model.Event) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(fh, calName, events); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
