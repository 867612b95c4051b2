package escalation

import "fmt"

var validMethods = map[string]bool{
	"sms": true, "push": true, "voice": true,
}

// Plan is the ordered, timed cascade handed to the runner: notify contact
// k, wait TimeoutSeconds, then move to k+1.
type Plan struct {
	Contacts       []Contact `json:"contacts"`
	TimeoutSeconds int       `json:"timeout_seconds"`
}

// NewPlan validates the cascade and re-derives every priority from list
// position, so ranks are always unique by construction.
func NewPlan(contacts []Contact, timeoutSeconds int) (Plan, error) {
	if len(contacts) == 0 {
		return Plan{}, fmt.Errorf("at least one contact is required")
	}
	if timeoutSeconds <= 0 {
		return Plan{}, fmt.Errorf("timeout_seconds must be positive")
	}
	ordered := make([]Contact, len(contacts))
	copy(ordered, contacts)
	seen := make(map[string]bool, len(ordered))
	for i := range ordered {
		c := &ordered[i]
		if c.MemberID == "" {
			return Plan{}, fmt.Errorf("contact %d: member_id is required", i)
		}
		if seen[c.MemberID] {
			return Plan{}, fmt.Errorf("duplicate contact member_id: %s", c.MemberID)
		}
		seen[c.MemberID] = true
		if !validMethods[c.ContactMethod] {
			return Plan{}, fmt.Errorf("contact %s: invalid contact_method: %s", c.MemberID, c.ContactMethod)
		}
		if c.Address == "" {
			return Plan{}, fmt.Errorf("contact %s: address is required", c.MemberID)
		}
		c.Priority = i + 1
	}
	return Plan{Contacts: ordered, TimeoutSeconds: timeoutSeconds}, nil
}
