package rollerv1

import (
	"math"
	"testing"
)

func TestStructRoundTripKeepsInt64Totals(t *testing.T) {
	in := &RollResponse{
		Results:    []RollResult{{Name: "Roll 1", Value: "x => 1", Total: math.MaxInt64}},
		Normalized: "1d20",
		Rng:        &RngResponse{SeedUsed: "18446744073709551615", RngAlgo: "pcg64", SeedSource: "SERVER", RollMode: "LIVE"},
	}
	wire, err := ToStruct(in)
	if err != nil {
		t.Fatalf("ToStruct returned error: %v", err)
	}
	if got := wire.GetFields()["normalized"].GetStringValue(); got != "1d20" {
		t.Fatalf("normalized field = %q, want 1d20", got)
	}

	var out RollResponse
	if err := FromStruct(wire, &out); err != nil {
		t.Fatalf("FromStruct returned error: %v", err)
	}
	if out.Results[0].Total != math.MaxInt64 {
		t.Fatalf("total = %d, want %d", out.Results[0].Total, int64(math.MaxInt64))
	}
	if out.Rng == nil || out.Rng.SeedUsed != in.Rng.SeedUsed {
		t.Fatalf("rng = %+v, want %+v", out.Rng, in.Rng)
	}
}

func TestFromStructAcceptsNil(t *testing.T) {
	var out GetClockRequest
	if err := FromStruct(nil, &out); err != nil {
		t.Fatalf("FromStruct(nil) returned error: %v", err)
	}
	if out != (GetClockRequest{}) {
		t.Fatalf("expected zero request, got %+v", out)
	}
}

func TestFromStructRejectsWrongTypes(t *testing.T) {
	wire, err := ToStruct(map[string]any{"segments": "many"})
	if err != nil {
		t.Fatalf("ToStruct returned error: %v", err)
	}
	var out CreateClockRequest
	if err := FromStruct(wire, &out); err == nil {
		t.Fatal("expected decode error for string segments")
	}
}
