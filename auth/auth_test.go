// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateAdminKey(t *testing.T) {
	key, err := GenerateAdminKey()
	if err != nil {
		t.Fatalf("GenerateAdminKey() error = %v", err)
	}

	if key == "" {
		t.Error("GenerateAdminKey() returned empty string")
	}

	// Should be URL-safe (no padding)
	if strings.Contains(key, "=") {
		t.Error("GenerateAdminKey() contains padding characters")
	}

	// 24 bytes encoded
	if len(key) != 32 {
		t.Errorf("GenerateAdminKey() length = %d, want 32", len(key))
	}

	keys := make(map[string]bool)
	for i := 0; i < 100; i++ {
		k, err := GenerateAdminKey()
		if err != nil {
			t.Fatalf("GenerateAdminKey() error on iteration %d: %v", i, err)
		}
		if keys[k] {
			t.Errorf("GenerateAdminKey() produced duplicate key: %s", k)
		}
		keys[k] = true
	}
}

func TestValidateAdminKey(t *testing.T) {
	stored, _ := GenerateAdminKey()

	tests := []struct {
		name     string
		stored   string
		provided string
		wantErr  bool
	}{
		{"valid key", stored, stored, false},
		{"wrong key", stored, "wrong-key", true},
		{"prefix only", stored, stored[:10], true},
		{"empty key", stored, "", true},
		{"nothing stored", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.stored, tt.provided)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func BenchmarkGenerateAdminKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateAdminKey()
	}
}

func BenchmarkValidateAdminKey(b *testing.B) {
	key, _ := GenerateAdminKey()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidateAdminKey(key, key)
	}
}
