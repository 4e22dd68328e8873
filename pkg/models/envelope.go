package models

import "encoding/json"

// Status is the status block of the unified response envelope.
// ErrorCode 0 with a nil message means success, including empty results.
type Status struct {
	ErrorCode    int     `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

// PairEnvelope is the unified {data, status} response for pair endpoints.
type PairEnvelope struct {
	Data   []Pair `json:"data"`
	Status Status `json:"status"`
}

// NewEnvelope wraps pairs in a success envelope.
func NewEnvelope(pairs []Pair) *PairEnvelope {
	if pairs == nil {
		pairs = []Pair{}
	}
	return &PairEnvelope{Data: pairs}
}

// ErrorEnvelope builds an envelope carrying an error code and message.
func ErrorEnvelope(code int, msg string) *PairEnvelope {
	return &PairEnvelope{
		Data:   []Pair{},
		Status: Status{ErrorCode: code, ErrorMessage: &msg},
	}
}

// OK reports whether the envelope carries a success status.
func (e *PairEnvelope) OK() bool {
	return e.Status.ErrorCode == 0
}

// MarshalJSON keeps "data" an array even for a nil slice.
func (e PairEnvelope) MarshalJSON() ([]byte, error) {
	type envelope PairEnvelope
	if e.Data == nil {
		e.Data = []Pair{}
	}
	return json.Marshal(envelope(e))
}

// BoostedToken is one entry of a boosted-token feed.
type BoostedToken struct {
	URL          string  `json:"url"`
	ChainID      string  `json:"chainId"`
	TokenAddress string  `json:"tokenAddress"`
	Amount       float64 `json:"amount"`
	TotalAmount  float64 `json:"totalAmount"`
	Icon         string  `json:"icon,omitempty"`
	Header       string  `json:"header,omitempty"`
	Description  string  `json:"description,omitempty"`
}
