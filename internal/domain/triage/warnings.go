package triage

import "github.com/peditrack/peditrack/internal/domain/symptoms"

// Region warning banners are a secondary lookup for framing; they never
// affect the tier decision.
var regionWarnings = map[string]string{
	symptoms.RegionHead:    "Head symptoms with vomiting, confusion, or a recent fall need prompt medical review.",
	symptoms.RegionChest:   "Any blue lips, gasping, or pauses in breathing are an emergency — call 911.",
	symptoms.RegionAbdomen: "Persistent pain in the lower right belly, a rigid belly, or green vomit needs urgent review.",
	symptoms.RegionSkin:    "A rash that does not fade when pressed with a glass can signal a serious infection.",
	symptoms.RegionLimbs:   "A child who refuses to bear weight or has a visibly deformed limb needs an exam.",
	symptoms.RegionGeneral: "Trust your instincts: if your child seems seriously unwell, seek care even without a specific symptom.",
}

// WarningFor returns the banner text for a body region, if one exists.
func WarningFor(region string) (string, bool) {
	w, ok := regionWarnings[region]
	return w, ok
}
