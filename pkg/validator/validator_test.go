package validator

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"plain address", "student@nitrkl.ac.in", false},
		{"gmail address", "someone@gmail.com", false},
		{"subaddress", "someone+quiz@gmail.com", false},
		{"surrounding whitespace", "  someone@gmail.com  ", false},
		{"empty", "", true},
		{"missing domain", "someone@", true},
		{"missing local part", "@gmail.com", true},
		{"no at sign", "someone.gmail.com", true},
		{"double dot domain", "someone@gmail..com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Someone@Gmail.COM "); got != "someone@gmail.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestValidatePhoneNo(t *testing.T) {
	tests := []struct {
		name    string
		phoneNo string
		wantErr bool
	}{
		{"ten digits", "9861012345", false},
		{"with country code", "+919861012345", false},
		{"empty", "", true},
		{"too short", "12345", true},
		{"letters", "98610abcde", true},
		{"spaces", "98610 12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhoneNo(tt.phoneNo)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhoneNo(%q) error = %v, wantErr %v", tt.phoneNo, err, tt.wantErr)
			}
		})
	}
}
