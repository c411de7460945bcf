// Package serializers shapes stored records into their transport form.
// Which fields appear is chosen by the caller through a View.
package serializers

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/institucion-api/model"
)

// TimestampLayout renders timestamps as DD/MM/YYYY HH:MM:SS
const TimestampLayout = "02/01/2006 15:04:05"

// View selects the projection of a record.
type View int

const (
	// ViewDefault is used for write responses, restore and the datatable endpoint
	ViewDefault View = iota
	// ViewList is the light projection used by list, activas and inactivas
	ViewList
	// ViewDetail is used by retrieve and expands relations
	ViewDetail
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	default:
		return "default"
	}
}

// Serializer turns an entity into its transport form for a view.
type Serializer[T any] interface {
	Serialize(entity *T, view View) interface{}
}

// Many serializes a slice with the same view
func Many[T any](s Serializer[T], items []T, view View) []interface{} {
	out := make([]interface{}, 0, len(items))
	for i := range items {
		out = append(out, s.Serialize(&items[i], view))
	}
	return out
}

// Clock formats timestamps in a fixed location.
type Clock struct {
	loc *time.Location
}

// NewClock returns a Clock for loc; nil means the process local zone
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{loc: loc}
}

// Format renders t, or nil for the zero time.
func (c Clock) Format(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.In(c.loc).Format(TimestampLayout)
	return &s
}

// Display is the natural string form of an entity
func Display(e model.Entity) string {
	return e.String()
}

// IDDisplay is "<id> - <display>"
func IDDisplay(e model.Entity) string {
	return fmt.Sprintf("%d - %s", e.GetID(), e.String())
}
