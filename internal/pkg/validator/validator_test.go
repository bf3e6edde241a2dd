package validator

import (
	"testing"
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

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "08:30", "12:05", "23:59"}
	invalid := []string{"24:00", "8:30", "12:60", "12.30", "1230", "12:3", "", "ab:cd"}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	for _, m := range []int{1, 6, 12} {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = false, want true", m)
		}
	}
	for _, m := range []int{0, 13, -1} {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = true, want false", m)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "datum", Message: "invalid"},
		{Field: "beginn", Message: "required"},
	}
	got := errs.Error()
	want := "datum: invalid; beginn: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "datum", Message: "invalid"},
		{Field: "beginn", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"datum": "invalid", "beginn": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
