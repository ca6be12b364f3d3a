package repositories

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"strconv"
	"strings"
)

var (
	hospitalColumns = []string{"hospital_id", "name", "address", "city", "state", "zip", "latitude", "longitude"}
	providerColumns = []string{"provider_id", "name", "type", "address", "city", "state", "zip", "latitude", "longitude", "transport_mode"}
	orderColumns    = []string{"order_id", "hospital_id", "provider_id", "device_name", "quantity", "order_date", "delivery_date"}
)

// csvTable is a parsed CSV with columns addressed by header name.
type csvTable struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, required []string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ports.ErrInvalidCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ports.ErrInvalidCSV, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		// Excel exports prefix the first column with a BOM.
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}

	missing := make([]string, 0)
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ports.ErrInvalidCSV, strings.Join(missing, ", "))
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidCSV, err)
	}

	return &csvTable{index: index, rows: rows}, nil
}

func (t *csvTable) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowErr(line int, format string, args ...any) error {
	return fmt.Errorf("%w: row %d: %s", ports.ErrInvalidCSV, line, fmt.Sprintf(format, args...))
}

func parseCoordinates(t *csvTable, row []string, line int) (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(t.get(row, "latitude"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return domain.Coordinates{}, rowErr(line, "invalid latitude %q", t.get(row, "latitude"))
	}
	lon, err := strconv.ParseFloat(t.get(row, "longitude"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return domain.Coordinates{}, rowErr(line, "invalid longitude %q", t.get(row, "longitude"))
	}
	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}

func parseAddress(t *csvTable, row []string) domain.Address {
	return domain.Address{
		Street: t.get(row, "address"),
		City:   t.get(row, "city"),
		State:  t.get(row, "state"),
		Zip:    t.get(row, "zip"),
	}
}

func requireID(t *csvTable, row []string, col string, line int, seen map[string]struct{}) (string, error) {
	id := t.get(row, col)
	if id == "" {
		return "", rowErr(line, "%s must not be empty", col)
	}
	if _, dup := seen[id]; dup {
		return "", rowErr(line, "duplicate %s %q", col, id)
	}
	seen[id] = struct{}{}
	return id, nil
}

// ParseHospitals reads a complete hospital collection. Any invalid row fails the whole file.
func ParseHospitals(r io.Reader) ([]*domain.Hospital, error) {
	t, err := readTable(r, hospitalColumns)
	if err != nil {
		return nil, fmt.Errorf("parse hospitals: %w", err)
	}

	seen := make(map[string]struct{}, len(t.rows))
	out := make([]*domain.Hospital, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2

		id, err := requireID(t, row, "hospital_id", line, seen)
		if err != nil {
			return nil, fmt.Errorf("parse hospitals: %w", err)
		}
		loc, err := parseCoordinates(t, row, line)
		if err != nil {
			return nil, fmt.Errorf("parse hospitals: %w", err)
		}

		out = append(out, &domain.Hospital{
			HospitalID: id,
			Name:       t.get(row, "name"),
			Address:    parseAddress(t, row),
			Location:   loc,
		})
	}
	return out, nil
}

// ParseProviders reads a complete provider collection.
// An unparsable devices_supplied list is logged and treated as empty.
func ParseProviders(r io.Reader) ([]*domain.Provider, error) {
	t, err := readTable(r, providerColumns)
	if err != nil {
		return nil, fmt.Errorf("parse providers: %w", err)
	}

	seen := make(map[string]struct{}, len(t.rows))
	out := make([]*domain.Provider, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2

		id, err := requireID(t, row, "provider_id", line, seen)
		if err != nil {
			return nil, fmt.Errorf("parse providers: %w", err)
		}
		loc, err := parseCoordinates(t, row, line)
		if err != nil {
			return nil, fmt.Errorf("parse providers: %w", err)
		}

		mode, known := domain.ParseTransportMode(t.get(row, "transport_mode"))
		if !known {
			log.Printf("providers csv: provider_id=%s unknown transport_mode=%q, emissions use truck factor", id, mode)
		}

		out = append(out, &domain.Provider{
			ProviderID:      id,
			Name:            t.get(row, "name"),
			Type:            domain.ProviderType(strings.ToLower(t.get(row, "type"))),
			Address:         parseAddress(t, row),
			Location:        loc,
			TransportMode:   mode,
			DevicesSupplied: parseDevices(id, t.get(row, "devices_supplied")),
		})
	}
	return out, nil
}

func parseDevices(providerID, raw string) []string {
	if raw == "" {
		return []string{}
	}

	var devices []string
	if err := json.Unmarshal([]byte(raw), &devices); err != nil {
		log.Printf("providers csv: provider_id=%s could not parse devices_supplied: %v", providerID, err)
		return []string{}
	}

	out := make([]string, 0, len(devices))
	for _, d := range devices {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// ParseOrders reads a complete order collection. Quantity must be a positive integer.
func ParseOrders(r io.Reader) ([]*domain.Order, error) {
	t, err := readTable(r, orderColumns)
	if err != nil {
		return nil, fmt.Errorf("parse orders: %w", err)
	}

	seen := make(map[string]struct{}, len(t.rows))
	out := make([]*domain.Order, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2

		id, err := requireID(t, row, "order_id", line, seen)
		if err != nil {
			return nil, fmt.Errorf("parse orders: %w", err)
		}

		qty, err := strconv.Atoi(t.get(row, "quantity"))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("parse orders: %w", rowErr(line, "quantity must be a positive integer, got %q", t.get(row, "quantity")))
		}

		out = append(out, &domain.Order{
			OrderID:      id,
			HospitalID:   t.get(row, "hospital_id"),
			ProviderID:   t.get(row, "provider_id"),
			DeviceName:   t.get(row, "device_name"),
			Quantity:     qty,
			OrderDate:    t.get(row, "order_date"),
			DeliveryDate: t.get(row, "delivery_date"),
		})
	}
	return out, nil
}
