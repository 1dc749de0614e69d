package service

import "testing"

func TestRedactTopLevelKeys(t *testing.T) {
	in := map[string]interface{}{
		"password": "hunter2",
		"Token":    "abc",
		"email":    "a@b.co",
	}
	out := Redact(in)

	if out["password"] != RedactedMarker {
		t.Errorf("password = %v, want marker", out["password"])
	}
	if out["Token"] != RedactedMarker {
		t.Errorf("Token = %v, want marker (case-insensitive match)", out["Token"])
	}
	if out["email"] != "a@b.co" {
		t.Errorf("email = %v, want untouched", out["email"])
	}
}

func TestRedactRecursesNestedMapsAndSlices(t *testing.T) {
	in := map[string]interface{}{
		"profile": map[string]interface{}{
			"api_key": "k-123",
			"name":    "ada",
		},
		"accounts": []interface{}{
			map[string]interface{}{"credit_card": "4111"},
			"plain",
		},
	}
	out := Redact(in)

	profile := out["profile"].(map[string]interface{})
	if profile["api_key"] != RedactedMarker {
		t.Errorf("nested api_key = %v, want marker", profile["api_key"])
	}
	if profile["name"] != "ada" {
		t.Errorf("nested name = %v, want untouched", profile["name"])
	}

	accounts := out["accounts"].([]interface{})
	first := accounts[0].(map[string]interface{})
	if first["credit_card"] != RedactedMarker {
		t.Errorf("slice credit_card = %v, want marker", first["credit_card"])
	}
	if accounts[1] != "plain" {
		t.Errorf("slice element = %v, want untouched", accounts[1])
	}
}

func TestRedactFalsePositiveByName(t *testing.T) {
	// name-based matching redacts "keyword" because it contains "key"
	out := Redact(map[string]interface{}{"keyword": "physics"})
	if out["keyword"] != RedactedMarker {
		t.Errorf("keyword = %v, want marker", out["keyword"])
	}
}

func TestRedactDoesNotMutateInput(t *testing.T) {
	in := map[string]interface{}{
		"secret": "s",
		"nested": map[string]interface{}{"auth": "a"},
	}
	_ = Redact(in)

	if in["secret"] != "s" {
		t.Errorf("input secret mutated to %v", in["secret"])
	}
	if in["nested"].(map[string]interface{})["auth"] != "a" {
		t.Error("nested input mutated")
	}
}

func TestRedactNil(t *testing.T) {
	if Redact(nil) != nil {
		t.Error("Redact(nil) should be nil")
	}
}
