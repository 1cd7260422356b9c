package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountRecord is the calculated discount for one weight/zone cell of a service.
// Numeric fields are nullable so a missing value is not confused with zero.
type DiscountRecord struct {
	Service             string              `json:"service,omitempty"`
	Weight              string              `json:"weight"`
	Zone                string              `json:"zone"`
	Rate                decimal.NullDecimal `json:"rate"`
	PortfolioDiscount   decimal.NullDecimal `json:"portfolio_discount"`
	IncentiveDiscount   decimal.NullDecimal `json:"incentive_discount"`
	TotalDiscount       decimal.NullDecimal `json:"total_discount"`
	AppliedDiscountRate decimal.NullDecimal `json:"applied_discount_rate"`
	PreMinimum          decimal.NullDecimal `json:"pre_minimum"`
	FinalMinimum        decimal.NullDecimal `json:"final_min"`
	FinalRate           decimal.NullDecimal `json:"final_rate"`
	IsMinimum           bool                `json:"is_min"`
}

// UnmarshalJSON decodes a record cell by cell. A value of the wrong type
// never fails the card: unparsable numbers become null and numeric
// weight or zone labels keep their literal text.
func (r *DiscountRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Service             json.RawMessage `json:"service"`
		Weight              json.RawMessage `json:"weight"`
		Zone                json.RawMessage `json:"zone"`
		Rate                json.RawMessage `json:"rate"`
		PortfolioDiscount   json.RawMessage `json:"portfolio_discount"`
		IncentiveDiscount   json.RawMessage `json:"incentive_discount"`
		TotalDiscount       json.RawMessage `json:"total_discount"`
		AppliedDiscountRate json.RawMessage `json:"applied_discount_rate"`
		PreMinimum          json.RawMessage `json:"pre_minimum"`
		FinalMinimum        json.RawMessage `json:"final_min"`
		FinalRate           json.RawMessage `json:"final_rate"`
		IsMinimum           json.RawMessage `json:"is_min"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = DiscountRecord{
		Service:             rawLabel(raw.Service),
		Weight:              rawLabel(raw.Weight),
		Zone:                rawLabel(raw.Zone),
		Rate:                rawDecimal(raw.Rate),
		PortfolioDiscount:   rawDecimal(raw.PortfolioDiscount),
		IncentiveDiscount:   rawDecimal(raw.IncentiveDiscount),
		TotalDiscount:       rawDecimal(raw.TotalDiscount),
		AppliedDiscountRate: rawDecimal(raw.AppliedDiscountRate),
		PreMinimum:          rawDecimal(raw.PreMinimum),
		FinalMinimum:        rawDecimal(raw.FinalMinimum),
		FinalRate:           rawDecimal(raw.FinalRate),
		IsMinimum:           rawBool(raw.IsMinimum),
	}
	return nil
}

// rawLabel returns a string label, or the literal text of a number
func rawLabel(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawDecimal accepts a number or a numeric string; anything else is null
func rawDecimal(raw json.RawMessage) decimal.NullDecimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.NullDecimal{}
	}

	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func rawBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}

// ServiceDiscounts groups the discount records of one service
type ServiceDiscounts struct {
	Service        string           `json:"service"`
	DiscountsDatas []DiscountRecord `json:"discounts_datas"`
}

// DiscountCard is the full per-service result returned by the calculate endpoint
type DiscountCard []ServiceDiscounts

// Services returns the service labels in backend order
func (c DiscountCard) Services() []string {
	services := make([]string, 0, len(c))
	for _, s := range c {
		services = append(services, s.Service)
	}
	return services
}

// Records flattens the card into a single record list, stamping each record
// with the service it belongs to.
func (c DiscountCard) Records() []DiscountRecord {
	var records []DiscountRecord
	for _, s := range c {
		for _, rec := range s.DiscountsDatas {
			rec.Service = s.Service
			records = append(records, rec)
		}
	}
	return records
}

// CalculateRequest is the body accepted by the calculate endpoint.
// weekly_price travels as a string, exactly as typed by the user.
type CalculateRequest struct {
	WeeklyPrice string `json:"weekly_price"`
}

// CalculateResponse is the backend response of the calculate endpoint
type CalculateResponse struct {
	DiscountCard DiscountCard `json:"discount_card"`
}

// DownloadRequest is the body accepted by the spreadsheet download endpoint
type DownloadRequest struct {
	WeeklySpend      float64  `json:"weekly_spend"`
	WeightRangeWidth *float64 `json:"weight_range_width"`
}
