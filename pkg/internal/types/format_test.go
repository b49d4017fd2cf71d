package types

import "testing"

func TestFormatSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{int64(2.5 * 1024 * 1024), "2.5 MB"},
		{1024 * 1024 * 1024, "1.0 GB"},
		{int64(3) * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, c := range cases {
		if got := FormatSize(c.size); got != c.want {
			t.Errorf("FormatSize(%d) = %q, want %q", c.size, got, c.want)
		}
	}
}
