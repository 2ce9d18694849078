package tzdb

import "testing"

func TestCorpusSize(t *testing.T) {
	names := Names()
	if len(names) != 596 {
		t.Fatalf("expected 596 zone names, got %d", len(names))
	}
	if Count() != len(names) {
		t.Fatalf("Count disagrees with Names: %d != %d", Count(), len(names))
	}
}

func TestCorpusContainsWellKnownZones(t *testing.T) {
	names := Names()
	index := make(map[string]bool, len(names))
	for _, name := range names {
		index[name] = true
	}

	for _, want := range []string{"UTC", "America/New_York", "America/Los_Angeles", "Asia/Tokyo", "Europe/London"} {
		if !index[want] {
			t.Fatalf("expected corpus to contain %s", want)
		}
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	first := Names()
	first[0] = "mutated"

	if Names()[0] == "mutated" {
		t.Fatalf("expected Names to return a defensive copy")
	}
}

func TestLoadKnownZone(t *testing.T) {
	loc, err := Load("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestLoadUnknownZone(t *testing.T) {
	if _, err := Load("Invalid/Timezone"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}
