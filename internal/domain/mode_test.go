package domain

import "testing"

func TestParseMode_LegacyPromptingMapsToAiAssisted(t *testing.T) {
	m := ParseMode("prompting")
	if !m.Equal(ModeAiAssisted) {
		t.Fatalf("expected legacy 'prompting' tag to parse as AiAssisted, got %q", m.String())
	}
}

func TestMode_String_RoundTripsBuiltins(t *testing.T) {
	for _, m := range []Mode{ModeAiAssisted, ModeReview, ModeArchitecture} {
		parsed := ParseMode(m.String())
		if !parsed.Equal(m) {
			t.Fatalf("round trip failed for %q: got %q", m.String(), parsed.String())
		}
	}
}

func TestCustomMode_RoundTrips(t *testing.T) {
	m := CustomMode("deep-work")
	label, ok := m.IsCustom()
	if !ok || label != "deep-work" {
		t.Fatalf("expected custom label 'deep-work', got %q ok=%v", label, ok)
	}

	parsed := ParseMode(m.String())
	gotLabel, ok := parsed.IsCustom()
	if !ok || gotLabel != "deep-work" {
		t.Fatalf("round trip lost custom label: %q ok=%v", gotLabel, ok)
	}
}

func TestCustomMode_EmptyLabelCollapsesToAiAssisted(t *testing.T) {
	m := CustomMode("")
	if !m.Equal(ModeAiAssisted) {
		t.Fatalf("expected empty custom label to collapse to AiAssisted, got %q", m.String())
	}
}

func TestParseMode_UnknownTagBecomesCustom(t *testing.T) {
	m := ParseMode("deep-work-2")
	label, ok := m.IsCustom()
	if !ok || label != "deep-work-2" {
		t.Fatalf("expected unknown tag to become custom, got %q ok=%v", label, ok)
	}
}
