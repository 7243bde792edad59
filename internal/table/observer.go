package table

import (
	"time"

	"github.com/google/uuid"
)

// EventType names the kind of mutation a table went through
type EventType string

const (
	EventRowSet           EventType = "row_set"
	EventRowInsert        EventType = "row_insert"
	EventRowDelete        EventType = "row_delete"
	EventColumnSet        EventType = "column_set"
	EventColumnInsert     EventType = "column_insert"
	EventColumnDelete     EventType = "column_delete"
	EventHeadersSet       EventType = "headers_set"
	EventMutationRejected EventType = "mutation_rejected"
)

// Event describes one committed (or rejected) mutation
type Event struct {
	Type      EventType
	TableID   string    // instance id of the table that changed
	Title     string    // table title at the time of the event
	Timestamp time.Time // when the event was emitted
	Data      any       // operation specific detail (positions, names, the error for rejections)
}

// Observer receives table mutation events synchronously
type Observer interface {
	OnEvent(event Event)
}

// meta carries the per-instance identity and observer list shared by both
// table kinds.
type meta struct {
	id        string
	title     string
	observers []Observer
}

func newMeta(title string, observers []Observer) meta {
	return meta{
		id:        uuid.NewString(),
		title:     title,
		observers: append([]Observer(nil), observers...),
	}
}

// derive returns identity for an independent copy: fresh id, same title, no observers
func (m *meta) derive() meta {
	return meta{id: uuid.NewString(), title: m.title}
}

// ID returns the unique instance id of the table
func (m *meta) ID() string { return m.id }

// Title returns the optional table label
func (m *meta) Title() string { return m.title }

// SetTitle replaces the table label
func (m *meta) SetTitle(title string) { m.title = title }

// AddObserver registers an observer to receive mutation events
func (m *meta) AddObserver(observer Observer) {
	m.observers = append(m.observers, observer)
}

// RemoveObserver unregisters an observer. Observers are matched with ==, so
// one whose value is not comparable (a struct holding a slice, say) is never
// found; register a pointer to it to be able to remove it.
func (m *meta) RemoveObserver(observer Observer) {
	if !comparableValue(observer) {
		return
	}
	for i, o := range m.observers {
		if comparableValue(o) && o == observer {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

func (m *meta) notify(typ EventType, data any) {
	if len(m.observers) == 0 {
		return
	}
	event := Event{
		Type:      typ,
		TableID:   m.id,
		Title:     m.title,
		Timestamp: time.Now(),
		Data:      data,
	}
	for _, observer := range m.observers {
		observer.OnEvent(event)
	}
}

// reject reports err to observers and hands it back to the caller
func (m *meta) reject(op string, err error) error {
	m.notify(EventMutationRejected, map[string]any{"op": op, "error": err})
	return err
}
