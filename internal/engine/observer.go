package engine

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the storage operation an event reports
type EventType string

const (
	EventDatabaseCreated EventType = "database_created"
	EventDatabaseLoaded  EventType = "database_loaded"
	EventTableCreated    EventType = "table_created"
	EventTableLoaded     EventType = "table_loaded"
	EventRowInserted     EventType = "row_inserted"
	EventInsertRejected  EventType = "insert_rejected"
	EventTableScanned    EventType = "table_scanned"
)

// Event represents one completed storage operation
type Event struct {
	Type      EventType   // Type of event
	OpID      string      // Unique operation ID for tracing
	Database  string      // Database the operation ran against
	Table     string      // Table name (empty for database-level events)
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Event-specific data (row count, error, filter)
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}

func newOpID() string {
	return uuid.New().String()
}

// notify sends an event to all registered observers
func (db *Database) notify(event Event) {
	db.mu.RLock()
	observers := db.observers
	db.mu.RUnlock()

	if event.OpID == "" {
		event.OpID = newOpID()
	}
	event.Database = db.name
	event.Timestamp = time.Now()
	for _, observer := range observers {
		observer.OnEvent(event)
	}
}

// AddObserver registers an observer to receive storage events
func (db *Database) AddObserver(observer Observer) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.observers = append(db.observers, observer)
}

// RemoveObserver unregisters an observer
func (db *Database) RemoveObserver(observer Observer) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, o := range db.observers {
		if o == observer {
			db.observers = append(db.observers[:i:i], db.observers[i+1:]...)
			return
		}
	}
}
