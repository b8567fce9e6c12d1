package object

import "testing"

func TestIdentityRoundTrip(t *testing.T) {
	cases := []Identity{
		{Name: "Ada Lovelace", Email: "ada@example.com", When: 1700000000, TZ: "+0000"},
		{Name: "José", Email: "jose@example.com", When: 1600000000, TZ: "-0300"},
		{Name: "Two Words Plus", Email: "x@y.z", When: 1, TZ: "+1345"},
	}
	for _, id := range cases {
		got, err := ParseIdentity(id.String())
		if err != nil {
			t.Fatalf("ParseIdentity(%q): %v", id.String(), err)
		}
		if got != id {
			t.Errorf("round-trip: got %+v, want %+v", got, id)
		}
	}
}

func TestIdentityString(t *testing.T) {
	id := Identity{Name: "Ada", Email: "ada@example.com", When: 1700000000, TZ: "+0100"}
	want := "Ada <ada@example.com> 1700000000 +0100"
	if got := id.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestParseIdentityMalformed(t *testing.T) {
	cases := []string{
		"",
		"no angle brackets 1 +0000",
		"Name <unterminated 1 +0000",
		"Name <a@b> notatime +0000",
	}
	for _, raw := range cases {
		if _, err := ParseIdentity(raw); err == nil {
			t.Errorf("ParseIdentity(%q) accepted malformed input", raw)
		}
	}
}
