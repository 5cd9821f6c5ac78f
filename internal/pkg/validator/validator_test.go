package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
		"123e4567-e89b-42d3-a456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-02d3-a456-426614174000",
		"507f1f77bcf86cd799439011",
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestParseDay(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"2025-03-10T15:04:05Z", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"2025-03-10T23:30:00.123Z", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"10/03/2025", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := ParseDay(c.input)
		if ok != c.ok || !got.Equal(c.want) {
			t.Errorf("ParseDay(%q) = %v, %v, want %v, %v", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"09:00", "9:30", "23:59", "00:00"}
	invalid := []string{"24:00", "12:60", "noon", "", "12"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestExceedsLength(t *testing.T) {
	if ExceedsLength("héllo", 5) {
		t.Errorf("ExceedsLength counts bytes instead of runes")
	}
	if !ExceedsLength("héllo!", 5) {
		t.Errorf("ExceedsLength(%q, 5) = false, want true", "héllo!")
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatalf("empty ValidationErrors should not be an error")
	}
	errs.Add("email", "email is required")
	errs.Add("name", "name is required")

	err := errs.Err()
	if err == nil {
		t.Fatalf("expected error")
	}
	if got, want := err.Error(), "email: email is required; name: name is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	m := errs.ToMap()
	if m["email"] != "email is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
