package auth

import (
	"strings"
	"testing"
)

// cheapParams keeps the test suite fast; production uses DefaultArgon2Params.
var cheapParams = Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestPasswordHasher_Format(t *testing.T) {
	t.Parallel()

	hash, err := NewPasswordHasher(DefaultArgon2Params).Hash("pw1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[1] != "argon2id" {
		t.Errorf("Expected argon2id algorithm, got: %s", parts[1])
	}
	if parts[2] != "v=19" {
		t.Errorf("Expected v=19, got: %s", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
	if strings.Contains(hash, "pw1") {
		t.Error("Hash must not contain the plaintext password")
	}
}

func TestPasswordHasher_SaltedUniqueness(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(cheapParams)

	hash1, err := h.Hash("the_same_password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hash2, err := h.Hash("the_same_password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}

	for _, hash := range []string{hash1, hash2} {
		ok, err := h.Verify("the_same_password", hash)
		if err != nil || !ok {
			t.Errorf("Verify(%s) = %v, %v; want true, nil", hash, ok, err)
		}
	}
}

func TestPasswordHasher_VerifyWrongPassword(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(cheapParams)
	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	ok, err := h.Verify("battery staple", hash)
	if err != nil {
		t.Fatalf("Verify should not error for wrong password: %v", err)
	}
	if ok {
		t.Error("Wrong password should not match")
	}
}

func TestPasswordHasher_VerifyUsesParamsFromHash(t *testing.T) {
	t.Parallel()

	hash, err := NewPasswordHasher(cheapParams).Hash("pw")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	ok, err := NewPasswordHasher(DefaultArgon2Params).Verify("pw", hash)
	if err != nil || !ok {
		t.Errorf("Verify across parameter sets = %v, %v; want true, nil", ok, err)
	}
}

func TestPasswordHasher_VerifyInvalidHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{"empty", "", ErrInvalidHash},
		{"plaintext", "pw1", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$salt$hash", ErrInvalidHash},
		{"missing parts", "$argon2id$v=19$m=65536", ErrInvalidHash},
		{"bad params", "$argon2id$v=19$m=x,t=3,p=4$c2FsdA$aGFzaA", ErrInvalidHash},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=4$c29tZXNhbHRoZXJl$c29tZWhhc2hoZXJl", ErrIncompatibleVersion},
	}

	h := NewPasswordHasher(cheapParams)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := h.Verify("password", tt.hash)
			if err != tt.wantErr {
				t.Errorf("Verify error = %v, want %v", err, tt.wantErr)
			}
			if ok {
				t.Error("invalid hash must never verify")
			}
		})
	}
}
