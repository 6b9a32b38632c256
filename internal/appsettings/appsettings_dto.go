package appsettings

type TimeValidationResponse struct {
	CheckIn struct {
		StartTime            string `json:"start_time"`
		EndTime              string `json:"end_time"`
		LateToleranceMinutes int    `json:"late_tolerance_minutes"`
	} `json:"check_in"`
	CheckOut struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	} `json:"check_out"`
	WorkingHours struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"working_hours"`
}

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// LeavePolicy adalah konfigurasi cuti yang dibaca ulang per pengajuan.
type LeavePolicy struct {
	MinReasonLength     int
	SubmitDeadlineHours int
	AnnualQuotaDays     int
}
