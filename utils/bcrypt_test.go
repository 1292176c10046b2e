package utils

import "testing"

func TestHashPassword_RoundTripsWithCompare(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ComparePassword(string(hashed), "s3cret"); err != nil {
		t.Fatalf("hash must verify its own password: %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong"); err == nil {
		t.Fatal("wrong password must not verify")
	}
}
