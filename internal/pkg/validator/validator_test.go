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

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "08:11", "23:59"}
	invalid := []string{"24:00", "8:6x", "08:60", "0811", ""}
	for _, s := range valid {
		_, ok := IsValidTimeOfDay(s)
		if !ok {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidTimeOfDay(s)
		if ok {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	valid := []string{"EMP-0042", "2021-00317", "a1"}
	invalid := []string{"", "-lead", "a", "has space"}
	for _, s := range valid {
		if !IsValidEmployeeID(s) {
			t.Errorf("IsValidEmployeeID(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmployeeID(s) {
			t.Errorf("IsValidEmployeeID(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"present", "absent", "late"}
	if !IsInSlice("late", statuses) {
		t.Error("IsInSlice(late) = false, want true")
	}
	if IsInSlice("holiday", statuses) {
		t.Error("IsInSlice(holiday) = true, want false")
	}
}
