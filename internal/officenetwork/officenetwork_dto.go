package officenetwork

type CreateOfficeNetworkRequest struct {
	Name         string   `json:"name" binding:"required"`
	IPAddress    *string  `json:"ip_address"`
	IPRangeStart *string  `json:"ip_range_start"`
	IPRangeEnd   *string  `json:"ip_range_end"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *int     `json:"radius_meters"`
	IsActive     *bool    `json:"is_active"`
}

type UpdateOfficeNetworkRequest struct {
	Name         string   `json:"name" binding:"required"`
	IPAddress    *string  `json:"ip_address"`
	IPRangeStart *string  `json:"ip_range_start"`
	IPRangeEnd   *string  `json:"ip_range_end"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *int     `json:"radius_meters"`
	IsActive     *bool    `json:"is_active"`
}

type OfficeNetworkResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	IPAddress    *string  `json:"ip_address,omitempty"`
	IPRangeStart *string  `json:"ip_range_start,omitempty"`
	IPRangeEnd   *string  `json:"ip_range_end,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters int      `json:"radius_meters"`
	IsActive     bool     `json:"is_active"`
}

type OfficeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
