package vitals

import "testing"

func TestBucketFor_Boundaries(t *testing.T) {
	tests := []struct {
		ageMonths int
		want      string
	}{
		{0, "infant"},
		{11, "infant"},
		{12, "toddler"}, // boundary belongs to the older bucket
		{35, "toddler"},
		{36, "preschool"},
		{71, "preschool"},
		{72, "school"},
		{143, "school"},
		{144, "adolescent"},
		{200, "adolescent"},
	}
	for _, tt := range tests {
		if got := BucketName(tt.ageMonths); got != tt.want {
			t.Errorf("BucketName(%d) = %q, want %q", tt.ageMonths, got, tt.want)
		}
	}
}

func TestRangeFor(t *testing.T) {
	tests := []struct {
		vital     string
		ageMonths int
		min, max  float64
	}{
		{TypeHeartRate, 6, 100, 160},
		{TypeHeartRate, 12, 90, 150},
		{TypeHeartRate, 150, 60, 100},
		{TypeRespiratoryRate, 0, 30, 60},
		{TypeRespiratoryRate, 100, 18, 30},
		{TypeSystolicBP, 48, 80, 110},
		{TypeOxygen, 30, 95, 100},
		{TypeTemperature, 80, 97.0, 100.3},
	}
	for _, tt := range tests {
		r, ok := RangeFor(tt.vital, tt.ageMonths)
		if !ok {
			t.Fatalf("RangeFor(%s, %d): unexpected miss", tt.vital, tt.ageMonths)
		}
		if r.Min != tt.min || r.Max != tt.max {
			t.Errorf("RangeFor(%s, %d) = [%v, %v], want [%v, %v]",
				tt.vital, tt.ageMonths, r.Min, r.Max, tt.min, tt.max)
		}
	}
}

func TestRangeFor_UnknownVital(t *testing.T) {
	if _, ok := RangeFor("blood_sugar", 24); ok {
		t.Error("expected miss for unknown vital type")
	}
}

func TestInRange(t *testing.T) {
	if !InRange(TypeHeartRate, 6, 120) {
		t.Error("120 bpm should be normal for an infant")
	}
	if InRange(TypeHeartRate, 150, 120) {
		t.Error("120 bpm should be out of range for an adolescent")
	}
	if !InRange(TypeOxygen, 24, 95) {
		t.Error("range bounds are inclusive")
	}
	if InRange(TypeOxygen, 24, 91) {
		t.Error("91%% SpO2 should be out of range")
	}
}
