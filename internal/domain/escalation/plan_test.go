package escalation

import "testing"

func testContacts() []Contact {
	return []Contact{
		{MemberID: "mom", Name: "Mom", Priority: 99, ContactMethod: "push", Address: "token-mom"},
		{MemberID: "dad", Name: "Dad", Priority: 1, ContactMethod: "sms", Address: "+15550001"},
		{MemberID: "grandma", Name: "Grandma", Priority: 42, ContactMethod: "voice", Address: "+15550002"},
	}
}

func TestNewPlan_RederivesPriorities(t *testing.T) {
	plan, err := NewPlan(testContacts(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range plan.Contacts {
		if c.Priority != i+1 {
			t.Errorf("contact %d: priority %d, want %d", i, c.Priority, i+1)
		}
	}
	if plan.Contacts[0].MemberID != "mom" {
		t.Error("submitted order must be preserved")
	}
}

func TestNewPlan_UniquePrioritiesAfterReorder(t *testing.T) {
	contacts := testContacts()
	// Reorder: move grandma first. Still no duplicate ranks afterwards.
	reordered := []Contact{contacts[2], contacts[0], contacts[1]}
	plan, err := NewPlan(reordered, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[int]bool{}
	for _, c := range plan.Contacts {
		if seen[c.Priority] {
			t.Fatalf("duplicate priority %d", c.Priority)
		}
		seen[c.Priority] = true
	}
	if plan.Contacts[0].MemberID != "grandma" || plan.Contacts[0].Priority != 1 {
		t.Errorf("reordered head should be grandma at priority 1, got %+v", plan.Contacts[0])
	}
}

func TestNewPlan_Validation(t *testing.T) {
	if _, err := NewPlan(nil, 300); err == nil {
		t.Error("expected error for empty contact list")
	}
	if _, err := NewPlan(testContacts(), 0); err == nil {
		t.Error("expected error for non-positive timeout")
	}
	dup := []Contact{
		{MemberID: "mom", ContactMethod: "sms", Address: "a"},
		{MemberID: "mom", ContactMethod: "push", Address: "b"},
	}
	if _, err := NewPlan(dup, 300); err == nil {
		t.Error("expected error for duplicate member_id")
	}
	bad := []Contact{{MemberID: "mom", ContactMethod: "fax", Address: "a"}}
	if _, err := NewPlan(bad, 300); err == nil {
		t.Error("expected error for invalid contact method")
	}
}

func TestNewPlan_DoesNotMutateInput(t *testing.T) {
	contacts := testContacts()
	if _, err := NewPlan(contacts, 300); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contacts[0].Priority != 99 {
		t.Error("NewPlan must copy, not mutate, the caller's slice")
	}
}
