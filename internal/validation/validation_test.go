package validation

import (
	"math"
	"testing"
)

func TestViolations(t *testing.T) {
	v := Violations{}
	Required("description", "  ", v)
	PositiveFloat("width", -1, v)
	FiniteFloat("height", math.NaN(), v)
	MinInt("pieces", 0, 1, v)
	if v.Empty() {
		t.Fatal("violations empty")
	}
	if v["description"] != "required" || v["width"] != "must_be_positive" {
		t.Errorf("violations: %v", v)
	}

	err := v.Err()
	if err == nil {
		t.Fatal("Err() = nil")
	}
	// fields render sorted for stable messages
	want := "validation failed: description: required, height: must_be_finite, pieces: below_minimum, width: must_be_positive"
	if err.Error() != want {
		t.Errorf("message = %q", err.Error())
	}

	clean := Violations{}
	Required("description", "banner", clean)
	PositiveFloat("width", 4, clean)
	RangeFloat("rate", 50, 1, 1000, clean)
	if clean.Err() != nil {
		t.Errorf("clean input produced error: %v", clean.Err())
	}
}
