package records

// EventType es el conjunto cerrado de actividades registrables.
type EventType string

const (
	EventTypeFeeding       EventType = "FEEDING"
	EventTypeDiaperChange  EventType = "DIAPER_CHANGE"
	EventTypeBowelMovement EventType = "BOWEL_MOVEMENT"
	EventTypeBath          EventType = "BATH"
)

// AllEventTypes en orden de presentación (mismo orden que los botones
// de quick-log del cliente).
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeFeeding,
		EventTypeDiaperChange,
		EventTypeBowelMovement,
		EventTypeBath,
	}
}

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeFeeding, EventTypeDiaperChange, EventTypeBowelMovement, EventTypeBath:
		return true
	default:
		return false
	}
}
