// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"math"

	"github.com/shopspring/decimal"
)

// DataResponse wraps every successful response body.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Wrap builds the success envelope.
func Wrap(data interface{}) DataResponse {
	return DataResponse{Data: data}
}

// Money renders an amount as a JSON number with two decimal places.
func Money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Percent rounds a percentage to two decimal places.
func Percent(p float64) float64 {
	return math.Round(p*100) / 100
}
