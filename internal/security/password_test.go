package security_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"schoolhub/api/internal/security"
)

func TestHashPasswordUsesWorkFactor(t *testing.T) {
	hash, err := security.HashPassword("Abcdef1!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	cost, err := bcrypt.Cost(hash)
	if err != nil {
		t.Fatalf("bcrypt.Cost() error = %v", err)
	}
	if cost != security.PasswordCost {
		t.Errorf("cost = %d, want %d", cost, security.PasswordCost)
	}
	if string(hash) == "Abcdef1!" {
		t.Error("hash must not equal plaintext")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := security.HashPasswordWithCost("Abcdef1!", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	second, err := security.HashPasswordWithCost("Abcdef1!", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) == string(second) {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := security.HashPasswordWithCost("SecurePass123!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to generate password hash: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     []byte
		want     bool
		wantErr  bool
	}{
		{
			name:     "Valid password should match hash",
			password: "SecurePass123!",
			hash:     hash,
			want:     true,
		},
		{
			name:     "Different password should not match hash",
			password: "WrongPassword123!",
			hash:     hash,
			want:     false,
		},
		{
			name:     "Empty password should not match hash",
			password: "",
			hash:     hash,
			want:     false,
		},
		{
			name:     "Malformed hash is an error",
			password: "SecurePass123!",
			hash:     []byte("not-a-bcrypt-hash"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := security.VerifyPassword(tt.password, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}
