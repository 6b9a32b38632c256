package timewindow

import (
	"fmt"
	"time"
)

// Minutes adalah menit sejak tengah malam pada timezone sipil yang dipakai
// seluruh aplikasi. Semua aritmatika jendela waktu dilakukan di tipe ini.
type Minutes int

// ParseClock membaca "HH:MM" (24 jam) menjadi Minutes.
func ParseClock(s string) (Minutes, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q: out of range", s)
	}
	return Minutes(h*60 + m), nil
}

// Clock memformat kembali ke "HH:MM".
func (m Minutes) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// MinutesOfDay mengambil komponen jam:menit dari t apa adanya.
// Tidak ada konversi timezone di sini; caller yang memastikan t sudah
// berada di timezone sipil aplikasi.
func MinutesOfDay(t time.Time) Minutes {
	return Minutes(t.Hour()*60 + t.Minute())
}

type Window struct {
	Start Minutes
	End   Minutes
}

// TimeSettings dibaca ulang dari app_settings pada setiap panggilan validasi.
// Validator tidak pernah menyimpan salinan antar request.
type TimeSettings struct {
	CheckIn              Window
	CheckOut             Window
	WorkingHours         Window
	LateToleranceMinutes int
}
