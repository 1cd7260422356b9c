package ratematrix

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"carrier-contracts/models"
)

// DisplayMode selects how the incentives table of a contract is rendered
type DisplayMode string

const (
	// DisplayModeFlat renders the incentives rows of the service as a plain table
	DisplayModeFlat DisplayMode = "flat"
	// DisplayModeWeightZoneMatrix pivots the incentives rows into weight by zone
	DisplayModeWeightZoneMatrix DisplayMode = "weight_zone_matrix"
)

// IncentivesTableTitle is the title of the table that can be pivoted
const IncentivesTableTitle = "Incentives off effective rate"

// excludedTables are never offered in the table select
var excludedTables = map[string]bool{
	"eligible_accounts": true,
}

// TableView is a contract table prepared for display
type TableView struct {
	Key             string
	Title           string
	Services        []string
	SelectedService string
	Headers         []string
	Rows            [][]string
	Pivot           *PivotTable
}

// PivotTable is the weight by zone rendering of the incentives table
type PivotTable struct {
	Service    string
	Billing    string
	WeightUnit string
	Zones      []string
	Rows       []PivotRow
}

// PivotRow is one weight range of a pivot table
type PivotRow struct {
	Weight string
	Cells  []string
}

// TableKeys returns the displayable table keys of a contract version, sorted
func TableKeys(version *models.ContractVersion) []string {
	if version == nil {
		return nil
	}
	keys := make([]string, 0, len(version.Tables))
	for key := range version.Tables {
		if excludedTables[key] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// TableTitle returns the title of a table, derived from the key when the table is unknown
func TableTitle(version *models.ContractVersion, key string) string {
	if version != nil {
		if table, ok := version.Tables[key]; ok && table.Title != "" {
			return table.Title
		}
	}
	return titleFromKey(key)
}

// BuildTableView prepares one table of a contract version for display.
// An empty key selects the first table; an empty service selects the first service.
func BuildTableView(version *models.ContractVersion, key, service string, mode DisplayMode) TableView {
	keys := TableKeys(version)
	if key == "" && len(keys) > 0 {
		key = keys[0]
	}

	view := TableView{Key: key, Title: TableTitle(version, key)}
	if version == nil {
		return view
	}
	table, ok := version.Tables[key]
	if !ok {
		return view
	}

	view.Headers = table.TableData.Headers
	view.Services = tableServices(table.TableData.Rows)
	if service == "" && len(view.Services) > 0 {
		service = view.Services[0]
	}
	view.SelectedService = service

	if table.Title == IncentivesTableTitle {
		buildIncentivesView(&view, table, mode)
		return view
	}

	for _, row := range table.TableData.Rows {
		if service != "" && cellText(row["service"]) != service {
			continue
		}
		view.Rows = append(view.Rows, rowValues(view.Headers, row))
	}
	return view
}

func buildIncentivesView(view *TableView, table models.ContractTable, mode DisplayMode) {
	// header keys are matched case-insensitively for this table
	var serviceRows []map[string]json.RawMessage
	for _, row := range table.TableData.Rows {
		normalized := make(map[string]json.RawMessage, len(row))
		for _, header := range table.TableData.Headers {
			normalized[strings.ToLower(header)] = row[header]
		}
		if cellText(normalized["service"]) == view.SelectedService {
			serviceRows = append(serviceRows, normalized)
		}
	}
	if len(serviceRows) == 0 {
		return
	}

	if mode == DisplayModeWeightZoneMatrix {
		if pivot := pivotIncentives(view.SelectedService, serviceRows); pivot != nil {
			view.Pivot = pivot
			return
		}
	}

	lowered := make([]string, len(view.Headers))
	for i, h := range view.Headers {
		lowered[i] = strings.ToLower(h)
	}
	for _, row := range serviceRows {
		view.Rows = append(view.Rows, rowValues(lowered, row))
	}
}

// pivotIncentives returns nil when no row carries a weight
func pivotIncentives(service string, rows []map[string]json.RawMessage) *PivotTable {
	hasWeight := false
	for _, row := range rows {
		if rawString(row["weight"]) != "" {
			hasWeight = true
			break
		}
	}
	if !hasWeight {
		return nil
	}

	zoneSet := make(map[float64]bool)
	var zones []float64
	weightSet := make(map[string]bool)
	var weights []string
	for _, row := range rows {
		if z, err := strconv.ParseFloat(strings.TrimSpace(rawString(row["zone"])), 64); err == nil && z != 0 {
			if !zoneSet[z] {
				zoneSet[z] = true
				zones = append(zones, z)
			}
		}
		if w := rawString(row["weight"]); w != "" && !weightSet[w] {
			weightSet[w] = true
			weights = append(weights, w)
		}
	}
	sort.Float64s(zones)
	sort.SliceStable(weights, func(i, j int) bool {
		return weightLowerBound(weights[i]) < weightLowerBound(weights[j])
	})

	pivot := &PivotTable{
		Service:    service,
		Billing:    rawString(rows[0]["billing"]),
		WeightUnit: rawString(rows[0]["weightunit"]),
	}
	for _, z := range zones {
		pivot.Zones = append(pivot.Zones, strconv.FormatFloat(z, 'f', -1, 64))
	}
	for _, w := range weights {
		pr := PivotRow{Weight: w}
		for _, z := range zones {
			value := Placeholder
			for _, row := range rows {
				rz, err := strconv.ParseFloat(strings.TrimSpace(rawString(row["zone"])), 64)
				if err == nil && rz == z && rawString(row["weight"]) == w {
					value = cellText(row["discount"])
					break
				}
			}
			pr.Cells = append(pr.Cells, value)
		}
		pivot.Rows = append(pivot.Rows, pr)
	}
	return pivot
}

// weightLowerBound parses the lower end of a range like "1-20".
// Named brackets such as "Letter" sort first.
func weightLowerBound(weight string) float64 {
	lower := strings.TrimSpace(strings.SplitN(weight, "-", 2)[0])
	v, err := strconv.ParseFloat(lower, 64)
	if err != nil {
		return math.Inf(-1)
	}
	return v
}

func tableServices(rows []map[string]json.RawMessage) []string {
	seen := make(map[string]bool)
	services := make([]string, 0)
	for _, row := range rows {
		s := rawString(row["service"])
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		services = append(services, s)
	}
	return services
}

func rowValues(keys []string, row map[string]json.RawMessage) []string {
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, cellText(row[key]))
	}
	return values
}

// rawString decodes a JSON string, or returns the raw text for other scalars
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// cellText renders a raw table cell: arrays are comma joined and empty values become the placeholder
func cellText(raw json.RawMessage) string {
	var list []string
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err == nil {
			if len(list) == 0 {
				return Placeholder
			}
			return strings.Join(list, ", ")
		}
	}
	if s := rawString(raw); s != "" {
		return s
	}
	return Placeholder
}
