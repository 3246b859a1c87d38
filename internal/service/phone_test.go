package service

import "testing"

func TestNormalizeIndianMobile(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"9876543210", "9876543210"},
		{"+919876543210", "9876543210"},
		{"919876543210", "9876543210"},
		{"09876543210", "9876543210"},
		{"+91 98765 43210", "9876543210"},
		{"98765-43210", "9876543210"},
		{"(0) 98765 43210", "9876543210"},
		{"6123456789", "6123456789"},
		// Mobiles start at 6; landline-shaped input is rejected.
		{"1234567890", ""},
		{"5876543210", ""},
		{"987654321", ""},
		{"98765432100", ""},
		{"abcdefghij", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeIndianMobile(tc.input); got != tc.want {
			t.Fatalf("NormalizeIndianMobile(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatIndianPhone(t *testing.T) {
	if got := FormatIndianPhone("9876543210"); got != "+919876543210" {
		t.Fatalf("FormatIndianPhone = %q, want %q", got, "+919876543210")
	}
	if got := FormatIndianPhone(""); got != "" {
		t.Fatalf("FormatIndianPhone on empty input = %q, want empty", got)
	}
}

func TestPhoneLookupForms(t *testing.T) {
	forms := phoneLookupForms("9876543210")
	if len(forms) != 2 || forms[0] != "+919876543210" || forms[1] != "9876543210" {
		t.Fatalf("phoneLookupForms = %v", forms)
	}
	if forms := phoneLookupForms(""); forms != nil {
		t.Fatalf("phoneLookupForms on empty input = %v, want nil", forms)
	}
}
