package deps

import "testing"

func TestNewDenyList(t *testing.T) {
	deny := NewDenyList([]string{" MIT ", "gpl-3.0", "", "MIT"})

	if deny.Len() != 2 {
		t.Errorf("Len() = %d, want 2", deny.Len())
	}
	if !deny.Denied("mit") {
		t.Error("Denied(mit) = false, want true")
	}
	if !deny.Denied("GPL-3.0") {
		t.Error("Denied(GPL-3.0) = false, want true")
	}
	if deny.Denied("") {
		t.Error("Denied(empty) = true, want false")
	}
}

func TestClassify(t *testing.T) {
	deny := NewDenyList([]string{"MIT", "GPL-3.0"})

	tests := []struct {
		name     string
		licenses []string
		want     Verdict
	}{
		{name: "empty is unknown", licenses: nil, want: VerdictUnknown},
		{name: "clean license passes", licenses: []string{"Apache-2.0"}, want: VerdictPass},
		{name: "denied license fails", licenses: []string{"MIT"}, want: VerdictFail},
		{name: "case variant fails", licenses: []string{"mit"}, want: VerdictFail},
		{name: "whitespace variant fails", licenses: []string{"  MIT  "}, want: VerdictFail},
		{name: "any denied fails dual license", licenses: []string{"Apache-2.0", "GPL-3.0"}, want: VerdictFail},
		{name: "all clean dual license passes", licenses: []string{"Apache-2.0", "BSD-3-Clause"}, want: VerdictPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.licenses, deny); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.licenses, got, tt.want)
			}

			// Classify is pure: a second call with the same inputs
			// must agree.
			if again := Classify(tt.licenses, deny); again != tt.want {
				t.Errorf("Classify(%v) second call = %v, want %v", tt.licenses, again, tt.want)
			}
		})
	}
}

func TestClassifyEmptyDenyList(t *testing.T) {
	deny := NewDenyList(nil)

	if got := Classify([]string{"MIT"}, deny); got != VerdictPass {
		t.Errorf("Classify with empty deny-list = %v, want %v", got, VerdictPass)
	}
}

func TestVerdictString(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    string
	}{
		{VerdictPass, "pass"},
		{VerdictFail, "fail"},
		{VerdictUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.verdict.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.verdict, got, tt.want)
		}
	}
}
