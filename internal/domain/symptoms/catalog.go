package symptoms

import "strings"

// Definition is one entry in the static symptom catalog. An empty
// ApplicableGender applies to all children; nil age bounds mean unbounded.
type Definition struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"display_name"`
	BodyRegion       string   `json:"body_region"`
	RedFlag          bool     `json:"red_flag"`
	MinAgeMonths     *int     `json:"min_age_months,omitempty"`
	MaxAgeMonths     *int     `json:"max_age_months,omitempty"`
	ApplicableGender string   `json:"applicable_gender,omitempty"`
	Aliases          []string `json:"aliases,omitempty"`
}

const (
	RegionHead    = "head"
	RegionChest   = "chest"
	RegionAbdomen = "abdomen"
	RegionSkin    = "skin"
	RegionLimbs   = "limbs"
	RegionGeneral = "general"
)

func months(n int) *int { return &n }

// catalog is the static knowledge base. Every definition belongs to exactly
// one body region; red-flag definitions are the only ones allowed to force
// an escalation regardless of stated severity.
var catalog = []Definition{
	{ID: "fever", DisplayName: "Fever", BodyRegion: RegionGeneral,
		Aliases: []string{"high temperature", "hot", "burning up", "temp"}},
	{ID: "cough", DisplayName: "Cough", BodyRegion: RegionChest,
		Aliases: []string{"coughing", "barky cough", "hacking"}},
	{ID: "wheezing", DisplayName: "Wheezing", BodyRegion: RegionChest,
		Aliases: []string{"whistling breath", "wheeze", "noisy breathing"}},
	{ID: "breathing_difficulty", DisplayName: "Difficulty breathing", BodyRegion: RegionChest, RedFlag: true,
		Aliases: []string{"trouble breathing", "can't breathe", "short of breath", "labored breathing"}},
	{ID: "rapid_breathing", DisplayName: "Rapid breathing", BodyRegion: RegionChest,
		Aliases: []string{"breathing fast", "fast breathing", "panting"}},
	{ID: "unresponsive", DisplayName: "Unresponsive or very difficult to wake", BodyRegion: RegionGeneral, RedFlag: true,
		Aliases: []string{"won't wake up", "not responding", "limp and floppy", "passed out"}},
	{ID: "seizure", DisplayName: "Seizure or convulsion", BodyRegion: RegionGeneral, RedFlag: true,
		Aliases: []string{"convulsing", "shaking fit", "fit", "twitching all over"}},
	{ID: "stiff_neck", DisplayName: "Stiff neck", BodyRegion: RegionHead, RedFlag: true,
		Aliases: []string{"can't bend neck", "neck pain with fever"}},
	{ID: "bulging_fontanelle", DisplayName: "Bulging soft spot", BodyRegion: RegionHead, RedFlag: true,
		MaxAgeMonths: months(18),
		Aliases:      []string{"soft spot bulging", "swollen fontanelle"}},
	{ID: "headache", DisplayName: "Headache", BodyRegion: RegionHead, MinAgeMonths: months(24),
		Aliases: []string{"head hurts", "head pain"}},
	{ID: "ear_pain", DisplayName: "Ear pain", BodyRegion: RegionHead,
		Aliases: []string{"earache", "pulling at ear", "ear hurts"}},
	{ID: "sore_throat", DisplayName: "Sore throat", BodyRegion: RegionHead,
		Aliases: []string{"throat hurts", "painful swallowing"}},
	{ID: "runny_nose", DisplayName: "Runny or stuffy nose", BodyRegion: RegionHead,
		Aliases: []string{"congestion", "stuffy", "sniffles"}},
	{ID: "vomiting", DisplayName: "Vomiting", BodyRegion: RegionAbdomen,
		Aliases: []string{"throwing up", "puking", "spit up everything"}},
	{ID: "diarrhea", DisplayName: "Diarrhea", BodyRegion: RegionAbdomen,
		Aliases: []string{"loose stool", "watery poop", "runny poop"}},
	{ID: "abdominal_pain", DisplayName: "Abdominal pain", BodyRegion: RegionAbdomen,
		Aliases: []string{"tummy ache", "stomach ache", "belly hurts"}},
	{ID: "blood_in_stool", DisplayName: "Blood in stool", BodyRegion: RegionAbdomen, RedFlag: true,
		Aliases: []string{"bloody poop", "red stool", "black tarry stool"}},
	{ID: "dehydration", DisplayName: "Signs of dehydration", BodyRegion: RegionGeneral, RedFlag: true,
		Aliases: []string{"no wet diapers", "not peeing", "dry mouth", "sunken eyes"}},
	{ID: "rash", DisplayName: "Rash", BodyRegion: RegionSkin,
		Aliases: []string{"spots", "hives", "red bumps"}},
	{ID: "petechiae", DisplayName: "Purple or pinpoint rash that doesn't fade", BodyRegion: RegionSkin, RedFlag: true,
		Aliases: []string{"purple spots", "non-blanching rash", "pinpoint red dots"}},
	{ID: "limp", DisplayName: "Limping or refusing to bear weight", BodyRegion: RegionLimbs, MinAgeMonths: months(10),
		Aliases: []string{"won't walk", "limping", "favoring leg"}},
	{ID: "testicular_pain", DisplayName: "Testicular pain or swelling", BodyRegion: RegionAbdomen, RedFlag: true,
		ApplicableGender: "male",
		Aliases:          []string{"groin pain", "swollen testicle"}},
	{ID: "menstrual_cramps", DisplayName: "Menstrual cramps", BodyRegion: RegionAbdomen,
		MinAgeMonths: months(96), ApplicableGender: "female",
		Aliases: []string{"period pain", "period cramps"}},
}

// Catalog returns the full static catalog.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// DefinitionByID looks up a single catalog entry.
func DefinitionByID(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Query holds catalog filter parameters. A nil AgeMonths skips the age rule
// entirely (age unknown never excludes).
type Query struct {
	AgeMonths  *int
	Gender     string
	BodyRegion string
	Search     string
}

// Filter applies the catalog rules in order: age window, gender tag, region
// restriction, then case-insensitive substring match against display name or
// any alias phrase.
func Filter(q Query) []Definition {
	var out []Definition
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, d := range catalog {
		if q.AgeMonths != nil {
			if d.MinAgeMonths != nil && *q.AgeMonths < *d.MinAgeMonths {
				continue
			}
			if d.MaxAgeMonths != nil && *q.AgeMonths > *d.MaxAgeMonths {
				continue
			}
		}
		if d.ApplicableGender != "" && q.Gender != "" && d.ApplicableGender != q.Gender {
			continue
		}
		if q.BodyRegion != "" && d.BodyRegion != q.BodyRegion {
			continue
		}
		if search != "" && !matchesText(d, search) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FindByFreeText matches a transcript against display names and alias
// phrases, the same substring rule Filter uses, so every entry point resolves
// phrases identically. Both directions are checked: a short transcript can
// appear inside an alias, and an alias can appear inside a long transcript.
func FindByFreeText(transcript string) []Definition {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if text == "" {
		return nil
	}
	var out []Definition
	for _, d := range catalog {
		if matchesText(d, text) || aliasInText(d, text) {
			out = append(out, d)
		}
	}
	return out
}

func matchesText(d Definition, lowered string) bool {
	if strings.Contains(strings.ToLower(d.DisplayName), lowered) {
		return true
	}
	for _, a := range d.Aliases {
		if strings.Contains(strings.ToLower(a), lowered) {
			return true
		}
	}
	return false
}

func aliasInText(d Definition, lowered string) bool {
	if strings.Contains(lowered, strings.ToLower(d.DisplayName)) {
		return true
	}
	for _, a := range d.Aliases {
		if strings.Contains(lowered, strings.ToLower(a)) {
			return true
		}
	}
	return false
}
