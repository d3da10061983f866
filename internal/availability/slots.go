package availability

import (
	"sort"
	"time"
)

// GetAvailableSlots returns the free intervals of w in chronological order,
// optionally clipped to b.
//
// Blocking slots are swept by start date; every gap between the cursor and
// the next slot becomes a free interval. The cursor moves to the day after
// each slot and never backwards, so overlapping slots cannot produce
// overlapping free intervals. Gaps are clipped to the window as well as to b.
func GetAvailableSlots(w Window, b Bounds) ([]AvailableSlot, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return freeIntervals(w, b), nil
}

func freeIntervals(w Window, b Bounds) []AvailableSlot {
	start := StartOfDay(w.StartDate)
	end := StartOfDay(w.EndDate)

	result := make([]AvailableSlot, 0)
	cursor := start
	for _, s := range blockingSlots(w.Slots) {
		slotStart := StartOfDay(s.StartDate)
		if cursor.Before(slotStart) {
			result = appendClipped(result, cursor, earlierOf(addDays(slotStart, -1), end), b)
		}
		if next := addDays(s.EndDate, 1); next.After(cursor) {
			cursor = next
		}
	}
	if !cursor.After(end) {
		result = appendClipped(result, cursor, end, b)
	}
	return result
}

// blockingSlots copies the RESERVED/OCCUPIED slots sorted by start date.
func blockingSlots(slots []Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Status.Blocking() {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return StartOfDay(out[i].StartDate).Before(StartOfDay(out[j].StartDate))
	})
	return out
}

func appendClipped(dst []AvailableSlot, from, to time.Time, b Bounds) []AvailableSlot {
	if !b.From.IsZero() {
		from = laterOf(from, StartOfDay(b.From))
	}
	if !b.To.IsZero() {
		to = earlierOf(to, StartOfDay(b.To))
	}
	if from.After(to) {
		return dst
	}
	return append(dst, AvailableSlot{
		StartDate:    from,
		EndDate:      to,
		DurationDays: DaysBetween(from, to) + 1,
	})
}

// GetSlotConflicts lists the blocking slots of w that overlap requested, in
// the order the slots appear in w.
//
// Both sides are widened to whole days before the closed-interval test, so
// a time of day on either input never hides an overlap.
func GetSlotConflicts(w Window, requested DateRange) ([]SlotConflict, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := requested.Validate(); err != nil {
		return nil, err
	}

	reqStart := StartOfDay(requested.Start)
	reqEnd := EndOfDay(requested.End)

	conflicts := make([]SlotConflict, 0)
	for _, s := range w.Slots {
		if !s.Status.Blocking() {
			continue
		}
		slotStart := StartOfDay(s.StartDate)
		slotEnd := EndOfDay(s.EndDate)
		if reqStart.After(slotEnd) || reqEnd.Before(slotStart) {
			continue
		}
		conflicts = append(conflicts, SlotConflict{
			Slot:           s,
			RequestedStart: requested.Start,
			RequestedEnd:   requested.End,
			OverlapStart:   laterOf(reqStart, slotStart),
			OverlapEnd:     StartOfDay(earlierOf(reqEnd, slotEnd)),
		})
	}
	return conflicts, nil
}

// CalculateAvailabilityStatus summarizes w over b.
//
// TotalDays spans b when both sides are set, else the whole window. Conflicts
// are only computed when both sides of b are set; see Status.ConflictsChecked.
func CalculateAvailabilityStatus(w Window, b Bounds) (Status, error) {
	free, err := GetAvailableSlots(w, b)
	if err != nil {
		return Status{}, err
	}

	from, to := StartOfDay(w.StartDate), StartOfDay(w.EndDate)
	if b.complete() {
		from, to = StartOfDay(b.From), StartOfDay(b.To)
	}

	st := Status{
		TotalDays:      DaysBetween(from, to) + 1,
		Conflicts:      []SlotConflict{},
		AvailableSlots: free,
	}
	for _, s := range free {
		st.AvailableDays += s.DurationDays
	}

	if b.complete() {
		conflicts, err := GetSlotConflicts(w, DateRange{Start: b.From, End: b.To})
		if err != nil {
			return Status{}, err
		}
		st.Conflicts = conflicts
		st.ConflictsChecked = true
	}

	st.IsAvailable = len(st.Conflicts) == 0 && st.AvailableDays == st.TotalDays
	st.IsPartiallyAvailable = st.AvailableDays > 0 && st.AvailableDays < st.TotalDays
	return st, nil
}

// SuggestAlternativeSlots returns up to maxSuggestions free intervals, taken
// from all windows, that are at least as long as requested and closest to it.
//
// Distance is the smaller of |start - requested start| and |end - requested
// end| in days. Ties keep window order then chronological order.
func SuggestAlternativeSlots(windows []Window, requested DateRange, maxSuggestions int) ([]AvailableSlot, error) {
	if err := requested.Validate(); err != nil {
		return nil, err
	}
	if err := validateWindows(windows); err != nil {
		return nil, err
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	wanted := DaysBetween(requested.Start, requested.End) + 1

	type candidate struct {
		slot     AvailableSlot
		distance int
	}
	var candidates []candidate
	for _, w := range windows {
		for _, s := range freeIntervals(w, Bounds{}) {
			if s.DurationDays < wanted {
				continue
			}
			candidates = append(candidates, candidate{
				slot: s,
				distance: min(
					abs(DaysBetween(s.StartDate, requested.Start)),
					abs(DaysBetween(s.EndDate, requested.End)),
				),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	n := min(len(candidates), maxSuggestions)
	out := make([]AvailableSlot, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.slot)
	}
	return out, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
