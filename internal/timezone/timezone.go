package timezone

import "time"

// Fuso de referência usado quando a empresa não tem um fuso válido.
// Configurável no boot (DEFAULT_TIMEZONE); fora isso, São Paulo.
var defaultName = "America/Sao_Paulo"

// SetDefault troca o fuso de fallback. Nomes inválidos são ignorados
// para o fallback nunca ficar quebrado.
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultName = tz
	}
}

func Default() string {
	return defaultName
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve o fuso IANA da empresa, caindo no default quando o
// nome é vazio ou desconhecido.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); tz != "" && err == nil {
		return loc
	}

	loc, err := time.LoadLocation(defaultName)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
