package timezone

import "testing"

func TestLocationFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		tz   string
		want string
	}{
		{"fuso valido", "America/New_York", "America/New_York"},
		{"fuso vazio", "", "America/Sao_Paulo"},
		{"fuso desconhecido", "Marte/Cratera", "America/Sao_Paulo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Location(tt.tz).String(); got != tt.want {
				t.Errorf("Location(%q) = %s, want %s", tt.tz, got, tt.want)
			}
		})
	}
}

func TestSetDefault(t *testing.T) {
	old := Default()
	t.Cleanup(func() { SetDefault(old) })

	SetDefault("America/Bahia")
	if got := Location("").String(); got != "America/Bahia" {
		t.Errorf("Location(\"\") = %s, want America/Bahia", got)
	}

	// Nome inválido não derruba o fallback.
	SetDefault("nao/existe")
	if got := Default(); got != "America/Bahia" {
		t.Errorf("Default() = %s, want America/Bahia", got)
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("") {
		t.Error("empty timezone should be invalid")
	}
	if IsValid("Foo/Bar") {
		t.Error("unknown timezone should be invalid")
	}
	if !IsValid("America/Sao_Paulo") {
		t.Error("America/Sao_Paulo should be valid")
	}
}
