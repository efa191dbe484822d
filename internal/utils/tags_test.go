package utils

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"json array", `["wallet","library"]`, []string{"wallet", "library"}},
		{"comma separated", "wallet, library", []string{"wallet", "library"}},
		{"whitespace and empties", " wallet ,, library ,", []string{"wallet", "library"}},
		{"single tag", "keys", []string{"keys"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTags(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStringToUint(t *testing.T) {
	if got := StringToUint("42"); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := StringToUint("not-a-number"); got != 0 {
		t.Errorf("Expected 0 for invalid input, got %d", got)
	}
	if got := StringToUint("-1"); got != 0 {
		t.Errorf("Expected 0 for negative input, got %d", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := NewCache(4)
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	c.Set("stats", 7, -1) // already expired
	if got := c.Get("stats"); got != nil {
		t.Errorf("Expected expired entry to be gone, got %v", got)
	}

	c.Set("stats", 7, 1e9)
	if got := c.Get("stats"); got != 7 {
		t.Errorf("Expected 7, got %v", got)
	}

	c.Delete("stats")
	if got := c.Get("stats"); got != nil {
		t.Errorf("Expected deleted entry to be gone, got %v", got)
	}
}
