package series

import (
	"encoding/json"
	"math"
)

type jsonPoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// MarshalJSON writes non-finite coordinates as null, since JSON has no NaN.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPoint{X: finiteOrNil(p.X), Y: finiteOrNil(p.Y)})
}

// UnmarshalJSON reads null coordinates back as NaN.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw jsonPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.X, p.Y = math.NaN(), math.NaN()
	if raw.X != nil {
		p.X = *raw.X
	}
	if raw.Y != nil {
		p.Y = *raw.Y
	}
	return nil
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
