// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a single update from a progress run.
type Event struct {
	Path      []string  // Titles from the outermost run to this one, e.g. ["plan.yaml", "hashing"]
	Type      EventType // What happened
	Total     int       // Expected steps, Indeterminate when unknown
	Current   int       // Steps registered so far
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// Title returns the last element of the path.
func (e Event) Title() string {
	if len(e.Path) == 0 {
		return ""
	}

	return e.Path[len(e.Path)-1]
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates a run has begun.
	EventStarted EventType = iota
	// EventStep indicates one unit of work completed.
	EventStep
	// EventCompleted indicates the run finished without error.
	EventCompleted
	// EventFailed indicates the run finished with an error.
	EventFailed
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventStep:
		return "step"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for progress events.
type EventData struct {
	// For EventFailed
	Error error
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends a progress event. Implementations must be safe for
	// concurrent use and may block only while the consumer catches up.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events from a ChannelReporter.
type Listener interface {
	// OnEvent is called for each event, from a single goroutine.
	OnEvent(event Event)
}

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
