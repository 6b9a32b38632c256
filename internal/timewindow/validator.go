package timewindow

import "time"

const (
	StatusTooEarly = "too_early"
	StatusOnTime   = "on_time"
	StatusLate     = "late"
	StatusTooLate  = "too_late"
	StatusEarly    = "early"
	StatusOvertime = "overtime"
)

type CheckInResult struct {
	Status      string
	IsLate      bool
	LateMinutes int

	// Batas jendela yang berlaku saat validasi, untuk detail penolakan.
	CheckInStart Minutes
	CheckInEnd   Minutes
}

// Rejected menandai hard reject: state machine tidak boleh membuat record.
func (r CheckInResult) Rejected() bool {
	return r.Status == StatusTooEarly || r.Status == StatusTooLate
}

type CheckOutResult struct {
	Status string

	// Terisi saat Status == early.
	EarlyMinutes    int
	ShouldWorkUntil Minutes

	// Terisi saat Status == too_early.
	WaitMinutes   int
	CanCheckoutAt Minutes
}

func (r CheckOutResult) Rejected() bool {
	return r.Status == StatusTooEarly
}

// ValidateCheckIn mengevaluasi jam check-in terhadap jendela check-in dan jam
// kerja. Batas working_hours.start + toleransi inklusif: tepat di batas masih
// on_time, satu menit setelahnya late dengan LateMinutes = 1.
func ValidateCheckIn(now time.Time, s TimeSettings) CheckInResult {
	res := CheckInResult{
		CheckInStart: s.CheckIn.Start,
		CheckInEnd:   s.CheckIn.End,
	}

	at := MinutesOfDay(now)

	switch {
	case at < s.CheckIn.Start:
		res.Status = StatusTooEarly
	case at > s.CheckIn.End:
		res.Status = StatusTooLate
	default:
		lateAfter := s.WorkingHours.Start + Minutes(s.LateToleranceMinutes)
		if at > lateAfter {
			res.Status = StatusLate
			res.IsLate = true
			res.LateMinutes = int(at - lateAfter)
		} else {
			res.Status = StatusOnTime
		}
	}

	return res
}

// ValidateCheckOut mengevaluasi jam check-out. Sebelum jendela check-out
// dibuka hasilnya hard reject dengan sisa tunggu; di antara pembukaan jendela
// dan akhir jam kerja dihitung pulang cepat; tepat di akhir jam kerja on_time;
// setelahnya overtime.
func ValidateCheckOut(now time.Time, s TimeSettings) CheckOutResult {
	at := MinutesOfDay(now)

	switch {
	case at < s.CheckOut.Start:
		return CheckOutResult{
			Status:        StatusTooEarly,
			WaitMinutes:   int(s.CheckOut.Start - at),
			CanCheckoutAt: s.CheckOut.Start,
		}
	case at < s.WorkingHours.End:
		return CheckOutResult{
			Status:          StatusEarly,
			EarlyMinutes:    int(s.WorkingHours.End - at),
			ShouldWorkUntil: s.WorkingHours.End,
		}
	case at == s.WorkingHours.End:
		return CheckOutResult{Status: StatusOnTime}
	default:
		return CheckOutResult{Status: StatusOvertime}
	}
}
