package helper

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"student@school.edu", true},
		{"a+tag@b.co", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
	}
	for _, tc := range cases {
		if got := ValidateEmail(tc.in); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidateUUID(t *testing.T) {
	if !ValidateUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8") {
		t.Error("valid uuid rejected")
	}
	if ValidateUUID("not-a-uuid") {
		t.Error("garbage accepted")
	}
	if ValidateUUID("") {
		t.Error("empty string accepted")
	}
}

func TestValidateRequiredFields(t *testing.T) {
	payload := map[string]interface{}{
		"title":  "Optics Lab",
		"empty":  "",
		"isNull": nil,
		"count":  0,
	}
	missing := ValidateRequiredFields(payload, []string{"title", "empty", "isNull", "absent", "count"})

	want := map[string]bool{"empty": true, "isNull": true, "absent": true}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	for _, f := range missing {
		if !want[f] {
			t.Errorf("unexpected missing field %q", f)
		}
	}
}
