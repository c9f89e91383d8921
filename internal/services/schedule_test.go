package services

import (
	"math/rand"
	"testing"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withActivity(id string, duration int) *domain.Activity {
	return &domain.Activity{ID: id, Duration: duration}
}

func TestRecalculateSlotTimesMixedSlots(t *testing.T) {
	slots := []domain.TimeSlot{
		{ID: domain.SlotID(0)},
		{ID: domain.SlotID(1), Activity: withActivity("a", 60)},
		{ID: domain.SlotID(2)},
		{ID: domain.SlotID(3), Activity: withActivity("b", 60)},
		{ID: domain.SlotID(4)},
	}

	got := RecalculateSlotTimes(slots)

	// 09:00, +90 (empty), +60+15, +90 (empty), +60+15.
	assert.Equal(t, []string{"09:00", "10:30", "11:45", "13:15", "14:30"}, slotTimes(got))
	assert.Equal(t, []string{"", "a", "", "b", ""}, slotActivityIDs(got))
	for i := range slots {
		assert.Equal(t, slots[i].ID, got[i].ID)
	}
}

func TestRecalculateSlotTimesEmpty(t *testing.T) {
	assert.Empty(t, RecalculateSlotTimes(nil))
	assert.Empty(t, RecalculateSlotTimes([]domain.TimeSlot{}))
}

func TestRecalculateSlotTimesDoesNotTouchInput(t *testing.T) {
	slots := []domain.TimeSlot{{ID: "slot-0", Time: domain.NewClockTime(7, 0)}, {ID: "slot-1"}}

	_ = RecalculateSlotTimes(slots)

	assert.Equal(t, domain.NewClockTime(7, 0), slots[0].Time)
}

func randomSlots(rng *rand.Rand, n int) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, n)
	for i := range slots {
		slots[i] = domain.TimeSlot{ID: domain.SlotID(i), Time: domain.ClockTime(rng.Intn(1440))}
		if rng.Intn(2) == 0 {
			slots[i].Activity = withActivity("x", 1+rng.Intn(240))
		}
	}
	return slots
}

func TestRecalculateSlotTimesProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		slots := randomSlots(rng, rng.Intn(12))

		got := RecalculateSlotTimes(slots)
		require.Len(t, got, len(slots))

		if len(got) > 0 {
			assert.Equal(t, AnchorTime, got[0].Time)
		}
		for i := 1; i < len(got); i++ {
			want := DefaultSpacing
			if prev := got[i-1].Activity; prev != nil {
				want = time.Duration(prev.Duration)*time.Minute + TransitionBuffer
			}
			assert.Equal(t, want, got[i].Time.Sub(got[i-1].Time))
			assert.Greater(t, got[i].Time, got[i-1].Time)
		}

		assert.Equal(t, got, RecalculateSlotTimes(got), "recalculation must be idempotent")
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	slots := GenerateTimeSlots()

	require.Len(t, slots, SlotsPerDay)
	assert.Equal(t,
		[]string{"09:00", "10:30", "12:00", "13:30", "15:00", "16:30", "18:00", "19:30"},
		slotTimes(slots),
	)
	assert.Equal(t, "slot-0", slots[0].ID)
	assert.Equal(t, "slot-7", slots[7].ID)
	assert.Equal(t, slots, RecalculateSlotTimes(slots), "generated spacing must match recalculation")
}

func TestInitializeDays(t *testing.T) {
	start := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	days := InitializeDays(kyoto, 3, &start)

	require.Len(t, days, 3)
	for i, d := range days {
		assert.Equal(t, i+1, d.DayNumber)
		assert.Equal(t, "kyoto", d.Region.ID)
		assert.Len(t, d.TimeSlots, SlotsPerDay)
	}
	assert.Equal(t, "Tue, Oct 20", days[0].Date)
	assert.Equal(t, "Wed, Oct 21", days[1].Date)
	assert.Equal(t, "Thu, Oct 22", days[2].Date)
}

func TestInitializeDaysWithoutStartDate(t *testing.T) {
	days := InitializeDays(kyoto, 2, nil)

	require.Len(t, days, 2)
	assert.Empty(t, days[0].Date)
	assert.Empty(t, InitializeDays(kyoto, 0, nil))
}
