package officenetwork

import (
	"encoding/binary"
	"math"
	"net"
)

const (
	MethodIP   = "ip"
	MethodGPS  = "gps"
	MethodNone = "none"
)

type MatchCandidate struct {
	IP        string
	Latitude  *float64
	Longitude *float64
}

type MatchResult struct {
	Matched bool
	Office  *OfficeNetwork
	Method  string
}

// MatchNetwork mencocokkan kandidat terhadap daftar network aktif. Sinyal IP
// dianggap otoritatif: seluruh network dicoba lewat IP dulu, GPS hanya
// fallback ketika tidak ada network yang cocok lewat IP. Network dievaluasi
// sesuai urutan slice (ascending id dari repo); yang pertama cocok menang.
func MatchNetwork(candidate MatchCandidate, offices []OfficeNetwork) MatchResult {
	for i := range offices {
		o := &offices[i]
		if !o.IsActive {
			continue
		}
		if matchIP(candidate.IP, o) {
			return MatchResult{Matched: true, Office: o, Method: MethodIP}
		}
	}

	if candidate.Latitude != nil && candidate.Longitude != nil {
		for i := range offices {
			o := &offices[i]
			if !o.IsActive || !o.HasGPSIdentity() {
				continue
			}
			dist := haversineMeters(
				*candidate.Latitude, *candidate.Longitude,
				*o.Latitude, *o.Longitude,
			)
			// Batas radius inklusif.
			if dist <= float64(o.RadiusMeters) {
				return MatchResult{Matched: true, Office: o, Method: MethodGPS}
			}
		}
	}

	return MatchResult{Method: MethodNone}
}

func matchIP(candidate string, o *OfficeNetwork) bool {
	if candidate == "" {
		return false
	}

	candidateV4, candidateIsV4 := ipv4ToUint32(candidate)

	if o.IPAddress != nil && *o.IPAddress != "" {
		// IPv6 (atau string yang bukan dotted-quad) dibandingkan apa adanya.
		if candidate == *o.IPAddress {
			return true
		}
		if candidateIsV4 {
			if officeV4, ok := ipv4ToUint32(*o.IPAddress); ok && candidateV4 == officeV4 {
				return true
			}
		}
	}

	// Perbandingan range hanya didefinisikan untuk IPv4 dotted-quad.
	if candidateIsV4 && o.IPRangeStart != nil && o.IPRangeEnd != nil {
		start, startOK := ipv4ToUint32(*o.IPRangeStart)
		end, endOK := ipv4ToUint32(*o.IPRangeEnd)
		if startOK && endOK && start <= candidateV4 && candidateV4 <= end {
			return true
		}
	}

	return false
}

func ipv4ToUint32(s string) (uint32, bool) {
	ip := net.ParseIP(s)
	if ip == nil {
		return 0, false
	}
	v4 := ip.To4()
	if v4 == nil {
		return 0, false
	}
	return binary.BigEndian.Uint32(v4), true
}

const earthRadiusMeters = 6371000

// haversineMeters menghitung jarak great-circle dua koordinat dalam meter.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
