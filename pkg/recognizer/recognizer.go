package recognizer

import (
	"context"
	"time"
)

// Intent names produced by the hosted language-understanding model.
const (
	IntentGreeting     = "Greeting"
	IntentCalendarAdd  = "Calendar.Add"
	IntentCalendarFind = "Calendar.Find"
	IntentHelp         = "Utilities.Help"
	IntentNone         = "None"
)

// Kind is the closed enumeration of entity variants the assistant consumes.
// Anything the model emits outside this set is mapped to KindUnknown and
// ignored downstream.
type Kind string

const (
	KindDateTime      Kind = "datetime"
	KindDate          Kind = "date"
	KindDateRange     Kind = "daterange"
	KindDateTimeRange Kind = "datetimerange"
	KindEmail         Kind = "email"
	KindLocation      Kind = "location"
	KindSubject       Kind = "subject"
	KindContactName   Kind = "contactName"
	KindUnknown       Kind = "unknown"
)

// Entity is a typed fragment of meaning extracted from free text.
//
// Start/End are wall-clock values without a meaningful zone; callers rebind
// them to the user's timezone before use. Start alone is set for the single
// instant kinds (datetime, date).
type Entity struct {
	Kind  Kind
	Text  string
	Start time.Time
	End   time.Time
}

// Result is the outcome of one recognition call.
type Result struct {
	Query    string
	Intent   string
	Score    float64
	Entities []Entity
}

// Recognizer maps free text to an intent name and a set of typed entities.
type Recognizer interface {
	Recognize(ctx context.Context, text string) (*Result, error)
}

// FirstOf returns the first entity of the given kind. Later duplicates are
// silently discarded; the model occasionally tags the same span twice.
func FirstOf(entities []Entity, kind Kind) (Entity, bool) {
	for _, e := range entities {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entity{}, false
}
