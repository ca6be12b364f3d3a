package dto

import "medresilient-service/internal/domain"

type HospitalResponse struct {
	HospitalID string  `json:"hospital_id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Zip        string  `json:"zip"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type ProviderResponse struct {
	ProviderID      string   `json:"provider_id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Zip             string   `json:"zip"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	TransportMode   string   `json:"transport_mode"`
	DevicesSupplied []string `json:"devices_supplied"`
}

// Dangling hospital/provider references leave the sub-objects out.
type OrderResponse struct {
	OrderID      string            `json:"order_id"`
	HospitalID   string            `json:"hospital_id"`
	ProviderID   string            `json:"provider_id"`
	DeviceName   string            `json:"device_name"`
	Quantity     int               `json:"quantity"`
	OrderDate    string            `json:"order_date"`
	DeliveryDate string            `json:"delivery_date"`
	Hospital     *HospitalResponse `json:"hospital,omitempty"`
	Provider     *ProviderResponse `json:"provider,omitempty"`
}

type ListHospitalsResponse struct {
	Success   bool               `json:"success"`
	Count     int                `json:"count"`
	Hospitals []HospitalResponse `json:"hospitals"`
}

type HospitalEnvelope struct {
	Success  bool             `json:"success"`
	Hospital HospitalResponse `json:"hospital"`
}

type ListProvidersResponse struct {
	Success   bool               `json:"success"`
	Count     int                `json:"count"`
	Providers []ProviderResponse `json:"providers"`
}

type ProviderEnvelope struct {
	Success  bool             `json:"success"`
	Provider ProviderResponse `json:"provider"`
}

type ListOrdersResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Orders  []OrderResponse `json:"orders"`
}

type OrderEnvelope struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

func FromHospital(h *domain.Hospital) HospitalResponse {
	return HospitalResponse{
		HospitalID: h.HospitalID,
		Name:       h.Name,
		Address:    h.Address.Street,
		City:       h.Address.City,
		State:      h.Address.State,
		Zip:        h.Address.Zip,
		Latitude:   h.Location.Lat,
		Longitude:  h.Location.Lon,
	}
}

func FromProvider(p *domain.Provider) ProviderResponse {
	devices := p.DevicesSupplied
	if devices == nil {
		devices = []string{}
	}
	return ProviderResponse{
		ProviderID:      p.ProviderID,
		Name:            p.Name,
		Type:            string(p.Type),
		Address:         p.Address.Street,
		City:            p.Address.City,
		State:           p.Address.State,
		Zip:             p.Address.Zip,
		Latitude:        p.Location.Lat,
		Longitude:       p.Location.Lon,
		TransportMode:   string(p.TransportMode),
		DevicesSupplied: devices,
	}
}

// FromOrder attaches the referenced hospital and provider when ds resolves them.
func FromOrder(o *domain.Order, ds *domain.Dataset) OrderResponse {
	res := OrderResponse{
		OrderID:      o.OrderID,
		HospitalID:   o.HospitalID,
		ProviderID:   o.ProviderID,
		DeviceName:   o.DeviceName,
		Quantity:     o.Quantity,
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
	}
	if h, ok := ds.Hospital(o.HospitalID); ok {
		hr := FromHospital(h)
		res.Hospital = &hr
	}
	if p, ok := ds.Provider(o.ProviderID); ok {
		pr := FromProvider(p)
		res.Provider = &pr
	}
	return res
}
