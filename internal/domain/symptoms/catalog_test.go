package symptoms

import "testing"

func containsID(defs []Definition, id string) bool {
	for _, d := range defs {
		if d.ID == id {
			return true
		}
	}
	return false
}

func TestFilter_AgeWindow(t *testing.T) {
	age := 6
	got := Filter(Query{AgeMonths: &age})
	if !containsID(got, "bulging_fontanelle") {
		t.Error("expected fontanelle symptom for a 6-month-old")
	}
	if containsID(got, "headache") {
		t.Error("headache has a 24-month floor and should be excluded")
	}

	age = 60
	got = Filter(Query{AgeMonths: &age})
	if containsID(got, "bulging_fontanelle") {
		t.Error("fontanelle symptom capped at 18 months")
	}
	if !containsID(got, "headache") {
		t.Error("expected headache for a 5-year-old")
	}
}

func TestFilter_UnknownAgeNeverExcludes(t *testing.T) {
	got := Filter(Query{})
	if len(got) != len(catalog) {
		t.Errorf("no filters should return the full catalog, got %d of %d", len(got), len(catalog))
	}
}

func TestFilter_Gender(t *testing.T) {
	got := Filter(Query{Gender: "female"})
	if containsID(got, "testicular_pain") {
		t.Error("male-tagged symptom should be excluded for female")
	}
	if !containsID(got, "fever") {
		t.Error("untagged symptoms apply to all genders")
	}
	// Absent gender keeps gender-tagged definitions.
	got = Filter(Query{})
	if !containsID(got, "testicular_pain") {
		t.Error("unknown gender should not exclude gender-tagged definitions")
	}
}

func TestFilter_Region(t *testing.T) {
	got := Filter(Query{BodyRegion: RegionChest})
	for _, d := range got {
		if d.BodyRegion != RegionChest {
			t.Errorf("expected only chest symptoms, got %s (%s)", d.ID, d.BodyRegion)
		}
	}
	if !containsID(got, "wheezing") {
		t.Error("expected wheezing in chest region")
	}
}

func TestFilter_SearchAliases(t *testing.T) {
	got := Filter(Query{Search: "THROWING UP"})
	if !containsID(got, "vomiting") {
		t.Error("alias match should be case-insensitive")
	}
	got = Filter(Query{Search: "tummy"})
	if !containsID(got, "abdominal_pain") {
		t.Error("substring alias match expected for 'tummy'")
	}
}

func TestFindByFreeText(t *testing.T) {
	got := FindByFreeText("she has been throwing up all night and feels hot")
	if !containsID(got, "vomiting") {
		t.Error("expected vomiting from 'throwing up' in transcript")
	}
	if !containsID(got, "fever") {
		t.Error("expected fever from 'hot' in transcript")
	}
	if got := FindByFreeText("   "); got != nil {
		t.Error("blank transcript matches nothing")
	}
}

func TestCatalog_RegionInvariant(t *testing.T) {
	regions := map[string]bool{
		RegionHead: true, RegionChest: true, RegionAbdomen: true,
		RegionSkin: true, RegionLimbs: true, RegionGeneral: true,
	}
	seen := map[string]bool{}
	for _, d := range catalog {
		if !regions[d.BodyRegion] {
			t.Errorf("%s: unknown body region %q", d.ID, d.BodyRegion)
		}
		if seen[d.ID] {
			t.Errorf("duplicate catalog id %q", d.ID)
		}
		seen[d.ID] = true
	}
}
