package appsettings

import "time"

// AppSetting adalah satu baris konfigurasi runtime key-value. Nilai disimpan
// sebagai string dan diketik ulang oleh service saat dibaca.
type AppSetting struct {
	Key       string `gorm:"column:key;type:varchar(100);primaryKey"`
	Value     string `gorm:"column:value;type:varchar(255);not null"`
	UpdatedAt time.Time
}

func (AppSetting) TableName() string {
	return "app_settings"
}

const (
	KeyCheckInStart      = "check_in.start_time"
	KeyCheckInEnd        = "check_in.end_time"
	KeyCheckOutStart     = "check_out.start_time"
	KeyCheckOutEnd       = "check_out.end_time"
	KeyWorkingStart      = "working_hours.start"
	KeyWorkingEnd        = "working_hours.end"
	KeyLateTolerance     = "late_tolerance_minutes"
	KeyLeaveMinReason    = "leave.min_reason_length"
	KeyLeaveDeadlineHrs  = "leave.submit_deadline_hours"
	KeyLeaveAnnualQuota  = "leave.annual_quota"
)

// Default dipakai ketika key belum pernah dikonfigurasi.
var defaults = map[string]string{
	KeyCheckInStart:     "08:00",
	KeyCheckInEnd:       "10:00",
	KeyCheckOutStart:    "16:00",
	KeyCheckOutEnd:      "20:00",
	KeyWorkingStart:     "08:00",
	KeyWorkingEnd:       "17:00",
	KeyLateTolerance:    "15",
	KeyLeaveMinReason:   "10",
	KeyLeaveDeadlineHrs: "24",
	KeyLeaveAnnualQuota: "12",
}
