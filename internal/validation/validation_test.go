package validation

import "testing"

func testSchema() Schema {
	return Schema{
		{Name: "customerId", Rules: []Rule{NonEmpty("pick a customer")}},
		{Name: "amount", Rules: []Rule{GreaterThan(0, "must be positive")}},
		{Name: "status", Rules: []Rule{OneOf("bad status", "pending", "paid")}},
	}
}

func TestValidateAllFieldsValid(t *testing.T) {
	v := testSchema().Validate(map[string]string{
		"customerId": "c1",
		"amount":     "12.34",
		"status":     "paid",
	})
	if !v.Empty() {
		t.Fatalf("expected no violations, got %#v", v)
	}
}

func TestValidateAggregatesAllFailures(t *testing.T) {
	v := testSchema().Validate(map[string]string{
		"customerId": "  ",
		"amount":     "-5",
		"status":     "overdue",
	})
	if len(v) != 3 {
		t.Fatalf("expected 3 failing fields, got %d: %#v", len(v), v)
	}
	if v["customerId"][0] != "pick a customer" {
		t.Errorf("unexpected customerId message: %v", v["customerId"])
	}
	if v["amount"][0] != "must be positive" {
		t.Errorf("unexpected amount message: %v", v["amount"])
	}
	if v["status"][0] != "bad status" {
		t.Errorf("unexpected status message: %v", v["status"])
	}
}

func TestValidateMissingFieldsCheckedAsEmpty(t *testing.T) {
	v := testSchema().Validate(map[string]string{"status": "pending"})
	if len(v["customerId"]) != 1 || len(v["amount"]) != 1 {
		t.Fatalf("expected customerId and amount violations, got %#v", v)
	}
	if len(v["status"]) != 0 {
		t.Fatalf("status should be valid, got %#v", v["status"])
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	values := map[string]string{
		"customerId": "c1",
		"amount":     "10",
		"status":     "pending",
	}
	s := testSchema()
	if v := s.Validate(values); !v.Empty() {
		t.Fatalf("first pass: %#v", v)
	}
	if v := s.Validate(values); !v.Empty() {
		t.Fatalf("second pass: %#v", v)
	}
}

func TestGreaterThan(t *testing.T) {
	rule := GreaterThan(0, "nope")
	cases := []struct {
		value string
		ok    bool
	}{
		{"0.01", true},
		{"50", true},
		{" 12.34 ", true},
		{"0", false},
		{"-1", false},
		{"", false},
		{"abc", false},
	}
	for _, c := range cases {
		if got := rule.Check(c.value); got != c.ok {
			t.Errorf("GreaterThan(0).Check(%q) = %v, want %v", c.value, got, c.ok)
		}
	}
}

func TestOneOf(t *testing.T) {
	rule := OneOf("nope", "pending", "paid")
	if !rule.Check("pending") || !rule.Check("paid") {
		t.Fatal("allowed values rejected")
	}
	for _, bad := range []string{"", "Pending", "draft", "paid "} {
		if rule.Check(bad) {
			t.Errorf("OneOf accepted %q", bad)
		}
	}
}

func TestAddPreservesOrder(t *testing.T) {
	v := make(Violations)
	v.Add("amount", "first")
	v.Add("amount", "second")
	if len(v["amount"]) != 2 || v["amount"][0] != "first" || v["amount"][1] != "second" {
		t.Fatalf("unexpected order: %#v", v["amount"])
	}
}
