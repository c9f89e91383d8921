package domain

import "fmt"

// Represents a fixed position within a day.
// Slot order is fixed by its ID; only Time and Activity change over the
// lifetime of a plan, and Time is always derived by the schedule engine.
type TimeSlot struct {
	ID       string    `json:"id"`
	Time     ClockTime `json:"time"`
	Activity *Activity `json:"activity,omitempty"`
}

// SlotID returns the stable identifier of the slot at index i.
func SlotID(i int) string { return fmt.Sprintf("slot-%d", i) }

func (s TimeSlot) Empty() bool { return s.Activity == nil }

// Clone copies the slot together with its placed activity.
func (s TimeSlot) Clone() TimeSlot {
	out := s
	if s.Activity != nil {
		a := s.Activity.Clone()
		out.Activity = &a
	}
	return out
}

// CloneSlots copies every slot in list.
func CloneSlots(list []TimeSlot) []TimeSlot {
	if list == nil {
		return nil
	}
	out := make([]TimeSlot, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// Represents one day of a trip.
// DayNumber is 1-indexed and always matches the day's position in the plan.
type DayItinerary struct {
	DayNumber int        `json:"dayNumber"`
	Date      string     `json:"date,omitempty"`
	Region    Region     `json:"region"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

func (d DayItinerary) Clone() DayItinerary {
	out := d
	out.Region = d.Region.Clone()
	out.TimeSlots = CloneSlots(d.TimeSlots)
	return out
}

// SlotIndex returns the index of the slot with the given id, or -1.
func (d DayItinerary) SlotIndex(slotID string) int {
	for i, s := range d.TimeSlots {
		if s.ID == slotID {
			return i
		}
	}
	return -1
}

// Activities returns the placed activities of the day in slot order.
func (d DayItinerary) Activities() []Activity {
	out := []Activity{}
	for _, s := range d.TimeSlots {
		if s.Activity != nil {
			out = append(out, *s.Activity)
		}
	}
	return out
}

// CloneDays copies every day in list.
func CloneDays(list []DayItinerary) []DayItinerary {
	if list == nil {
		return nil
	}
	out := make([]DayItinerary, len(list))
	for i, d := range list {
		out[i] = d.Clone()
	}
	return out
}
