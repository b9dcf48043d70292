package routes

import "testing"

func TestMissingSocialEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"", true},
		{"<nil>", true}, // absent claim rendered through fmt.Sprint
		{"client@example.com", false},
	}
	for _, c := range cases {
		if got := missingSocialEmail(c.email); got != c.want {
			t.Errorf("missingSocialEmail(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}
