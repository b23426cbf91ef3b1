package validators

import "testing"

// Só os caminhos que rejeitam antes do DNS; resolução real não entra
// em teste unitário.
func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"vazio", ""},
		{"sem arroba", "joao.exemplo.com"},
		{"sem dominio", "joao@"},
		{"sem usuario", "@exemplo.com"},
		{"dominio em branco", "joao@   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsEmailDomainValid(tt.email) {
				t.Errorf("IsEmailDomainValid(%q) = true, want false", tt.email)
			}
		})
	}
}
