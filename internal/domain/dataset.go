package domain

import "strings"

// Entity collection names accepted by CSV reloads.
type DatasetKind string

const (
	DatasetHospitals DatasetKind = "hospitals"
	DatasetProviders DatasetKind = "providers"
	DatasetOrders    DatasetKind = "orders"
)

// Dataset is one immutable generation of hospitals, providers and orders.
// A reload builds a new Dataset and swaps it in; existing generations never change.
type Dataset struct {
	Generation uint64
	Hospitals  []*Hospital
	Providers  []*Provider
	Orders     []*Order

	hospitalsByID map[string]*Hospital
	providersByID map[string]*Provider
	ordersByID    map[string]*Order
}

// NewDataset indexes the given collections. When ids repeat, the last record wins the index.
func NewDataset(generation uint64, hospitals []*Hospital, providers []*Provider, orders []*Order) *Dataset {
	ds := &Dataset{
		Generation:    generation,
		Hospitals:     hospitals,
		Providers:     providers,
		Orders:        orders,
		hospitalsByID: make(map[string]*Hospital, len(hospitals)),
		providersByID: make(map[string]*Provider, len(providers)),
		ordersByID:    make(map[string]*Order, len(orders)),
	}
	for _, h := range hospitals {
		ds.hospitalsByID[h.HospitalID] = h
	}
	for _, p := range providers {
		ds.providersByID[p.ProviderID] = p
	}
	for _, o := range orders {
		ds.ordersByID[o.OrderID] = o
	}
	return ds
}

func (d *Dataset) Hospital(id string) (*Hospital, bool) {
	h, ok := d.hospitalsByID[id]
	return h, ok
}

func (d *Dataset) Provider(id string) (*Provider, bool) {
	p, ok := d.providersByID[id]
	return p, ok
}

func (d *Dataset) Order(id string) (*Order, bool) {
	o, ok := d.ordersByID[id]
	return o, ok
}

// OrdersByHospital returns orders placed by the hospital, in load order.
func (d *Dataset) OrdersByHospital(hospitalID string) []*Order {
	out := make([]*Order, 0)
	for _, o := range d.Orders {
		if o.HospitalID == hospitalID {
			out = append(out, o)
		}
	}
	return out
}

// OrdersByDevice returns orders whose device name contains device (case-insensitive).
func (d *Dataset) OrdersByDevice(device string) []*Order {
	needle := strings.ToLower(device)
	out := make([]*Order, 0)
	for _, o := range d.Orders {
		if strings.Contains(strings.ToLower(o.DeviceName), needle) {
			out = append(out, o)
		}
	}
	return out
}

// WithHospitals returns a new generation with the hospital collection replaced.
func (d *Dataset) WithHospitals(hospitals []*Hospital) *Dataset {
	return NewDataset(d.Generation+1, hospitals, d.Providers, d.Orders)
}

// WithProviders returns a new generation with the provider collection replaced.
func (d *Dataset) WithProviders(providers []*Provider) *Dataset {
	return NewDataset(d.Generation+1, d.Hospitals, providers, d.Orders)
}

// WithOrders returns a new generation with the order collection replaced.
func (d *Dataset) WithOrders(orders []*Order) *Dataset {
	return NewDataset(d.Generation+1, d.Hospitals, d.Providers, orders)
}
