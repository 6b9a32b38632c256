package officenetwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string    { return &s }
func f64Ptr(f float64) *float64  { return &f }

// Kantor pusat Jakarta dengan range WiFi dan geofence 100m.
func mainOffice() OfficeNetwork {
	return OfficeNetwork{
		ID:           1,
		Name:         "Kantor Pusat",
		IPRangeStart: strPtr("192.168.1.1"),
		IPRangeEnd:   strPtr("192.168.1.255"),
		Latitude:     f64Ptr(-6.2000),
		Longitude:    f64Ptr(106.8166),
		RadiusMeters: 100,
		IsActive:     true,
	}
}

func TestMatchNetwork_IPInRange(t *testing.T) {
	offices := []OfficeNetwork{mainOffice()}

	for _, ip := range []string{"192.168.1.1", "192.168.1.50", "192.168.1.255"} {
		res := MatchNetwork(MatchCandidate{IP: ip}, offices)
		assert.True(t, res.Matched, ip)
		assert.Equal(t, MethodIP, res.Method, ip)
		assert.Equal(t, "Kantor Pusat", res.Office.Name)
	}
}

func TestMatchNetwork_IPOutsideRange(t *testing.T) {
	offices := []OfficeNetwork{mainOffice()}

	for _, ip := range []string{"192.168.0.255", "192.168.2.1", "10.0.0.1"} {
		res := MatchNetwork(MatchCandidate{IP: ip}, offices)
		assert.False(t, res.Matched, ip)
		assert.Equal(t, MethodNone, res.Method, ip)
	}
}

func TestMatchNetwork_ExactIPAddress(t *testing.T) {
	offices := []OfficeNetwork{{
		ID:        1,
		Name:      "Kantor Cabang",
		IPAddress: strPtr("10.10.0.7"),
		IsActive:  true,
	}}

	assert.True(t, MatchNetwork(MatchCandidate{IP: "10.10.0.7"}, offices).Matched)
	assert.False(t, MatchNetwork(MatchCandidate{IP: "10.10.0.8"}, offices).Matched)
}

func TestMatchNetwork_IPv6ExactMatchOnly(t *testing.T) {
	offices := []OfficeNetwork{{
		ID:           1,
		Name:         "Kantor Cabang",
		IPAddress:    strPtr("2001:db8::1"),
		IPRangeStart: strPtr("2001:db8::1"),
		IPRangeEnd:   strPtr("2001:db8::ff"),
		IsActive:     true,
	}}

	res := MatchNetwork(MatchCandidate{IP: "2001:db8::1"}, offices)
	assert.True(t, res.Matched)
	assert.Equal(t, MethodIP, res.Method)

	// Aritmatika range tidak berlaku untuk IPv6.
	res = MatchNetwork(MatchCandidate{IP: "2001:db8::2"}, offices)
	assert.False(t, res.Matched)
}

func TestMatchNetwork_GPSInsideRadius(t *testing.T) {
	offices := []OfficeNetwork{mainOffice()}

	// ~50m ke utara dari titik kantor.
	res := MatchNetwork(MatchCandidate{
		Latitude:  f64Ptr(-6.19955),
		Longitude: f64Ptr(106.8166),
	}, offices)
	assert.True(t, res.Matched)
	assert.Equal(t, MethodGPS, res.Method)
}

func TestMatchNetwork_GPSOutsideRadius(t *testing.T) {
	offices := []OfficeNetwork{mainOffice()}

	// ~200m dari titik kantor.
	res := MatchNetwork(MatchCandidate{
		Latitude:  f64Ptr(-6.1982),
		Longitude: f64Ptr(106.8166),
	}, offices)
	assert.False(t, res.Matched)
	assert.Equal(t, MethodNone, res.Method)
}

func TestMatchNetwork_GPSBoundaryInclusive(t *testing.T) {
	office := mainOffice()
	office.RadiusMeters = 100

	// Cari titik yang jaraknya sangat dekat dengan 100m lalu pastikan
	// perbandingan <= inklusif lewat jarak terhitung langsung.
	dist := haversineMeters(-6.2000, 106.8166, -6.199101, 106.8166)
	assert.InDelta(t, 100, dist, 1.0)

	res := MatchNetwork(MatchCandidate{
		Latitude:  f64Ptr(-6.199101),
		Longitude: f64Ptr(106.8166),
	}, []OfficeNetwork{office})
	assert.True(t, res.Matched)
}

func TestMatchNetwork_IPAuthoritativeOverGPS(t *testing.T) {
	farOffice := OfficeNetwork{
		ID:           1,
		Name:         "Kantor Dekat",
		Latitude:     f64Ptr(-6.2000),
		Longitude:    f64Ptr(106.8166),
		RadiusMeters: 500,
		IsActive:     true,
	}
	ipOffice := OfficeNetwork{
		ID:           2,
		Name:         "Kantor IP",
		IPRangeStart: strPtr("172.16.0.1"),
		IPRangeEnd:   strPtr("172.16.0.100"),
		IsActive:     true,
	}

	// Kandidat cocok GPS di kantor pertama DAN IP di kantor kedua:
	// IP menang walaupun kantor GPS lebih dulu dalam urutan.
	res := MatchNetwork(MatchCandidate{
		IP:        "172.16.0.10",
		Latitude:  f64Ptr(-6.2000),
		Longitude: f64Ptr(106.8166),
	}, []OfficeNetwork{farOffice, ipOffice})
	assert.True(t, res.Matched)
	assert.Equal(t, MethodIP, res.Method)
	assert.Equal(t, "Kantor IP", res.Office.Name)
}

func TestMatchNetwork_InactiveSkipped(t *testing.T) {
	office := mainOffice()
	office.IsActive = false

	res := MatchNetwork(MatchCandidate{IP: "192.168.1.50"}, []OfficeNetwork{office})
	assert.False(t, res.Matched)
}

func TestMatchNetwork_FirstActiveMatchWins(t *testing.T) {
	first := mainOffice()
	second := mainOffice()
	second.ID = 2
	second.Name = "Kantor Kedua"

	res := MatchNetwork(MatchCandidate{IP: "192.168.1.50"}, []OfficeNetwork{first, second})
	assert.Equal(t, "Kantor Pusat", res.Office.Name)
}

func TestIPv4ToUint32(t *testing.T) {
	v, ok := ipv4ToUint32("192.168.1.1")
	assert.True(t, ok)
	assert.Equal(t, uint32(0xc0a80101), v)

	_, ok = ipv4ToUint32("2001:db8::1")
	assert.False(t, ok)
	_, ok = ipv4ToUint32("not-an-ip")
	assert.False(t, ok)
}
