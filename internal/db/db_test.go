package db

import "testing"

func TestEnsureConnParamsDSN(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare path", "data/test.db", "data/test.db?_fk=1&_busy_timeout=5000"},
		{"existing params", "data/test.db?cache=shared", "data/test.db?cache=shared&_fk=1&_busy_timeout=5000"},
		{"fk already set", "data/test.db?_fk=0", "data/test.db?_fk=0&_busy_timeout=5000"},
		{"both already set", "data/test.db?_fk=1&_busy_timeout=100", "data/test.db?_fk=1&_busy_timeout=100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ensureConnParamsDSN(tc.input); got != tc.want {
				t.Fatalf("dsn: got %q, want %q", got, tc.want)
			}
		})
	}
}
