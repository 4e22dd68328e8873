package provider

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number decodes a JSON number, a numeric string, null or anything else
// into a float64. Values that are not numeric decode to 0 without error.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(parseLoose(data))
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 { return float64(n) }

// Count is the integer counterpart of Number. Fractions are truncated.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count(int(parseLoose(data)))
	return nil
}

// Int returns c as an int.
func (c Count) Int() int { return int(c) }

func parseLoose(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		data = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
