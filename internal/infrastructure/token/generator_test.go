package token

import (
	"strings"
	"testing"
)

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	plain, hash, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(plain, APITokenPrefix+"_") {
		t.Errorf("Generate() token %q missing prefix", plain)
	}
	if hash != HashToken(plain) {
		t.Errorf("Generate() hash mismatch for %q", plain)
	}
	if len(hash) != 64 {
		t.Errorf("Generate() hash length = %d, want 64", len(hash))
	}

	// Two tokens should never collide
	plain2, _, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plain == plain2 {
		t.Errorf("Generate() produced duplicate tokens")
	}
}

func TestValidateFormat(t *testing.T) {
	g := NewGenerator()
	valid, _, _ := g.Generate()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", valid, false},
		{"empty token", "", true},
		{"wrong prefix", "abc_deadbeef", true},
		{"prefix only", "ddk_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
		})
	}
}

func TestVerifyHash(t *testing.T) {
	g := NewGenerator()
	plain, hash, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !VerifyHash(plain, hash) {
		t.Errorf("VerifyHash() = false for matching token")
	}
	if VerifyHash(plain+"x", hash) {
		t.Errorf("VerifyHash() = true for tampered token")
	}
	if VerifyHash(plain, "") {
		t.Errorf("VerifyHash() = true for empty stored hash")
	}
}
