package services

import (
	"time"
	"trip-planner-service/internal/domain"
)

const (
	// AnchorTime is the start of the first slot of every day.
	AnchorTime domain.ClockTime = 9 * 60
	// TransitionBuffer is added after an activity before the next slot starts.
	TransitionBuffer = 15 * time.Minute
	// DefaultSpacing separates a slot without an activity from the next one.
	DefaultSpacing = 90 * time.Minute
	// SlotsPerDay is the fixed number of slots generated for each day.
	SlotsPerDay = 8
)

// slotSpan is how far the slot after s starts from s.
func slotSpan(s domain.TimeSlot) time.Duration {
	if s.Activity == nil {
		return DefaultSpacing
	}
	return time.Duration(s.Activity.Duration)*time.Minute + TransitionBuffer
}

// RecalculateSlotTimes assigns every slot its start time, in slot order.
//
// The first slot starts at the anchor; each following slot starts after the
// previous slot's activity duration plus the transition buffer, or after the
// default spacing when the previous slot is empty. Slot ids and activities
// are carried over unchanged, so the function is idempotent.
func RecalculateSlotTimes(slots []domain.TimeSlot) []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(slots))

	current := AnchorTime
	for i, s := range slots {
		out[i] = s.Clone()
		out[i].Time = current
		current = current.Add(slotSpan(s))
	}

	return out
}

// GenerateTimeSlots returns the empty slots of a fresh day.
// Their spacing matches what RecalculateSlotTimes produces for empty slots.
func GenerateTimeSlots() []domain.TimeSlot {
	slots := make([]domain.TimeSlot, SlotsPerDay)

	t := AnchorTime
	for i := range slots {
		slots[i] = domain.TimeSlot{ID: domain.SlotID(i), Time: t}
		t = t.Add(DefaultSpacing)
	}

	return slots
}

// InitializeDays builds numberOfDays empty itineraries for region.
// When startDate is set each day carries its display date.
func InitializeDays(region domain.Region, numberOfDays int, startDate *time.Time) []domain.DayItinerary {
	if numberOfDays < 1 {
		return []domain.DayItinerary{}
	}

	days := make([]domain.DayItinerary, 0, numberOfDays)
	for i := 1; i <= numberOfDays; i++ {
		day := domain.DayItinerary{
			DayNumber: i,
			Region:    region.Clone(),
			TimeSlots: GenerateTimeSlots(),
		}
		if startDate != nil {
			day.Date = domain.DayLabel(*startDate, i-1)
		}
		days = append(days, day)
	}

	return days
}

// recalculateDays refreshes the slot times of every day in place.
func recalculateDays(days []domain.DayItinerary) {
	for i := range days {
		days[i].TimeSlots = RecalculateSlotTimes(days[i].TimeSlots)
	}
}
