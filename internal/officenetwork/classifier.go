package officenetwork

import (
	"context"
	"fmt"
)

const (
	WorkTypeOnsite  = "onsite"
	WorkTypeOffsite = "offsite"
)

type ClassifyInput struct {
	IP        string
	Latitude  *float64
	Longitude *float64
}

// Classification adalah keputusan onsite/offsite untuk satu aksi presensi.
// Keputusan ini murni; check-in dan check-out diklasifikasikan terpisah
// karena work type keduanya boleh berbeda.
type Classification struct {
	WorkType string
	IsOnsite bool
	Method   string
	Reason   string
	Office   *OfficeNetwork
}

// Classify memuat network aktif lalu menjalankan matcher. Tanpa network
// aktif hasilnya tetap deterministik offsite, bukan error.
func (s *service) Classify(ctx context.Context, input ClassifyInput) (Classification, error) {
	offices, err := s.activeNetworks(ctx)
	if err != nil {
		return Classification{}, err
	}

	if len(offices) == 0 {
		return Classification{
			WorkType: WorkTypeOffsite,
			Method:   MethodNone,
			Reason:   "No active office network configured",
		}, nil
	}

	result := MatchNetwork(MatchCandidate{
		IP:        input.IP,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}, offices)

	if !result.Matched {
		return Classification{
			WorkType: WorkTypeOffsite,
			Method:   MethodNone,
			Reason:   "No matching office network found for IP/GPS",
		}, nil
	}

	reason := ""
	switch result.Method {
	case MethodIP:
		reason = fmt.Sprintf("IP address matches %s", result.Office.Name)
	case MethodGPS:
		reason = fmt.Sprintf("Within %dm of %s", result.Office.RadiusMeters, result.Office.Name)
	}

	return Classification{
		WorkType: WorkTypeOnsite,
		IsOnsite: true,
		Method:   result.Method,
		Reason:   reason,
		Office:   result.Office,
	}, nil
}
