package version

import "testing"

func TestSafe(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"v1.2.3", "1.2.3"},
		{"1.2.3-beta1", "1.2.3b1"},
		{"1.2.3-alpha.2", "1.2.3a2"},
		{"1.0.0-RC1", "1.0.0rc1"},
		{"1.0.0c1", "1.0.0rc1"},
		{"1.0.0-preview3", "1.0.0rc3"},
		{"22.4.1-dev1", "22.4.1.dev1"},
		{"22.4.1dev", "22.4.1.dev0"},
		{"1.0-1", "1.0.post1"},
		{"1.0.rev2", "1.0.post2"},
		{"1.0.0a1.dev2", "1.0.0a1.dev2"},
		{"1!2.0", "1!2.0"},
		{"0!2.0", "2.0"},
		{"01.002.3", "1.2.3"},
		{"1.0+Ubuntu-1", "1.0+ubuntu.1"},
		{"not a version", "not a version"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Safe(tt.in); got != tt.want {
				t.Errorf("Safe(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPEP440Compliant(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1.2.3", true},
		{"1.2.3.dev1", true},
		{"1.2.3rc1", true},
		{"1.0.post1", true},
		{"v1.2.3", false},
		{"1.2.3-beta1", false},
		{"1.2.3-dev1", false},
		{"", false},
		{"latest", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PEP440Compliant(tt.in); got != tt.want {
				t.Errorf("PEP440Compliant(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	tests := map[string]string{
		"v1.0.0": "1.0.0",
		"V2":     "2",
		"1.0.0":  "1.0.0",
		"v":      "v",
		"vnext":  "vnext",
	}
	for in, want := range tests {
		if got := Strip(in); got != want {
			t.Errorf("Strip(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("1.2.3-beta1", "1.2.3b1") {
		t.Error("expected normalized versions to be equal")
	}
	if Equal("1.2.3", "1.2.4") {
		t.Error("expected different versions to differ")
	}
}

func TestCheckDevelop(t *testing.T) {
	tests := map[string]bool{
		"1.0.0.dev1":  true,
		"1.0.0-dev1":  true,
		"1.0.0a1.dev": true,
		"1.0.0":       false,
		"1.0.0rc1":    false,
		"garbage":     false,
	}
	for in, want := range tests {
		if got := CheckDevelop(in); got != want {
			t.Errorf("CheckDevelop(%q) = %v, want %v", in, got, want)
		}
	}
}
