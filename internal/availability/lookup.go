package availability

import "time"

// CheckDate looks date up across windows.
//
// The first window (in input order) containing date decides: date is
// available unless a blocking slot of that window covers it. A date outside
// every window is unavailable.
func CheckDate(windows []Window, date time.Time) (DateCheck, error) {
	if err := validateWindows(windows); err != nil {
		return DateCheck{}, err
	}

	day := StartOfDay(date)
	check := DateCheck{Date: day}
	for _, w := range windows {
		if !within(day, w.StartDate, w.EndDate) {
			continue
		}
		if check.Covered {
			check.Ambiguous = true
			break
		}
		check.Covered = true
		check.WindowID = w.ID
		status, _ := StatusOn(w, day)
		check.Available = !status.Blocking()
	}
	return check, nil
}

// IsDateAvailable reports whether date is free in the first window containing it.
// Windows of the same item are expected not to overlap.
func IsDateAvailable(windows []Window, date time.Time) (bool, error) {
	check, err := CheckDate(windows, date)
	if err != nil {
		return false, err
	}
	return check.Available, nil
}

// StatusOn returns the status of day inside w: the status of the first
// blocking slot covering it, else AVAILABLE. ok is false when day lies
// outside the window.
func StatusOn(w Window, day time.Time) (status SlotStatus, ok bool) {
	day = StartOfDay(day)
	if !within(day, w.StartDate, w.EndDate) {
		return "", false
	}
	for _, s := range w.Slots {
		if s.Status.Blocking() && within(day, s.StartDate, s.EndDate) {
			return s.Status, true
		}
	}
	return StatusAvailable, true
}

func within(day, start, end time.Time) bool {
	return !day.Before(StartOfDay(start)) && !day.After(EndOfDay(end))
}
