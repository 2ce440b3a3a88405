package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBraceURL(t *testing.T) {
	got := BraceURL("https://nexus/repository/r/g/a/1.0/", []string{"a.txt.md5", "a.txt"})
	assert.Equal(t, "https://nexus/repository/r/g/a/1.0/{a.txt.md5,a.txt}", got)
}

func TestExpandBraces(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{name: "no braces", in: "https://h/x.txt", want: []string{"https://h/x.txt"}},
		{name: "single set", in: "https://h/{a,b}", want: []string{"https://h/a", "https://h/b"}},
		{name: "single item", in: "https://h/{a}", want: []string{"https://h/a"}},
		{name: "two sets", in: "h/{a,b}-{1,2}", want: []string{"h/a-1", "h/a-2", "h/b-1", "h/b-2"}},
		{name: "unmatched open", in: "h/{a,b", wantErr: true},
		{name: "unmatched close", in: "h/a,b}", wantErr: true},
		{name: "nested", in: "h/{a,{b,c}}", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandBraces(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandBracesRoundTrip(t *testing.T) {
	names := []string{"r-1.0-a.pdf.md5", "r-1.0-b.csv.md5", "r-1.0-a.pdf", "r-1.0-b.csv"}
	urls, err := ExpandBraces(BraceURL("https://h/base", names))
	require.NoError(t, err)
	require.Len(t, urls, len(names))
	for i, n := range names {
		assert.Equal(t, "https://h/base/"+n, urls[i])
	}
}
