package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("somepasswd", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash = %q, not a bcrypt hash", hash)
	}
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("somepasswd", 0)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("somepasswd", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !ComparePassword("somepasswd", hash) {
		t.Errorf("password should match its own hash")
	}
	if ComparePassword("otherpasswd", hash) {
		t.Errorf("wrong password matched")
	}
}

func TestValidationString(t *testing.T) {
	token, err := CreateValidationString("1234")
	if err != nil {
		t.Fatalf("CreateValidationString: %v", err)
	}
	if !ValidateString(token, "1234") {
		t.Errorf("token should validate against its secret")
	}
	if ValidateString(token, "123") {
		t.Errorf("token validated against the wrong secret")
	}
}

func TestValidationStringMalformed(t *testing.T) {
	if ValidateString("bad-str", "1234") {
		t.Errorf("malformed token validated")
	}
}

func TestValidationStringSalted(t *testing.T) {
	a, err := CreateValidationString("1234")
	if err != nil {
		t.Fatalf("CreateValidationString: %v", err)
	}
	b, err := CreateValidationString("1234")
	if err != nil {
		t.Fatalf("CreateValidationString: %v", err)
	}
	if a == b {
		t.Errorf("tokens for the same secret should differ")
	}
}
