package validators

import "testing"

func TestIsPhoneValid(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"international", "+37369123456", true},
		{"local", "069123456", true},
		{"with spaces", "+373 69 123 456", true},
		{"with hyphens", "069-123-456", true},
		{"surrounding whitespace", "  +37369123456 \n", true},
		{"minimum length", "12345678", true},
		{"long grouped number", "+373 69 123 456 789 012 345", true},
		{"too short", "1234567", false},
		{"leading space inside plus", "+ 37369123456", false},
		{"letters", "+373abc12345", false},
		{"double plus", "++37369123456", false},
		{"empty", "", false},
		{"text", "hello there", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPhoneValid(tt.phone); got != tt.want {
				t.Errorf("IsPhoneValid(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}
