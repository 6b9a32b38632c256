package officenetwork

import (
	"time"

	"gorm.io/gorm"
)

// OfficeNetwork mendeskripsikan satu jaringan kantor: identitas IP (exact
// dan/atau range) dan/atau titik GPS dengan radius geofence. Minimal salah
// satu identitas harus terisi agar network dapat dipakai.
type OfficeNetwork struct {
	ID           int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string   `gorm:"column:name;type:varchar(255);not null"`
	IPAddress    *string  `gorm:"column:ip_address;type:varchar(45)"`
	IPRangeStart *string  `gorm:"column:ip_range_start;type:varchar(45)"`
	IPRangeEnd   *string  `gorm:"column:ip_range_end;type:varchar(45)"`
	Latitude     *float64 `gorm:"column:latitude"`
	Longitude    *float64 `gorm:"column:longitude"`
	RadiusMeters int      `gorm:"column:radius_meters;not null;default:100"`
	IsActive     bool     `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (OfficeNetwork) TableName() string {
	return "office_networks"
}

// HasIPIdentity melaporkan apakah network punya identitas IP yang bisa dicocokkan.
func (o OfficeNetwork) HasIPIdentity() bool {
	if o.IPAddress != nil && *o.IPAddress != "" {
		return true
	}
	return o.IPRangeStart != nil && *o.IPRangeStart != "" &&
		o.IPRangeEnd != nil && *o.IPRangeEnd != ""
}

// HasGPSIdentity melaporkan apakah network punya titik geofence.
func (o OfficeNetwork) HasGPSIdentity() bool {
	return o.Latitude != nil && o.Longitude != nil
}
