package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantLines    []string
		wantStatuses []int
		wantErr      bool
	}{
		{
			name:         "status only",
			input:        "\n**http_status=204**\n",
			wantStatuses: []int{204},
		},
		{
			name:         "body then status",
			input:        "report-2.1-summary.pdf\n\n  report-2.1-data.csv  \r\n\n**http_status=200**\n",
			wantLines:    []string{"report-2.1-summary.pdf", "report-2.1-data.csv"},
			wantStatuses: []int{200},
		},
		{
			name:         "legacy trailer without closing stars",
			input:        "\n**http_status=404\n",
			wantStatuses: []int{404},
		},
		{
			name:         "one trailer per parallel transfer",
			input:        "\n**http_status=200**\n\n**http_status=404**\n\n**http_status=200**\n",
			wantStatuses: []int{200, 404, 200},
		},
		{
			name:         "diagnostics after the trailer stay in the body",
			input:        "\n**http_status=200**\nWarning: something odd\n",
			wantLines:    []string{"Warning: something odd"},
			wantStatuses: []int{200},
		},
		{
			name:         "connection failure reports 000",
			input:        "\n**http_status=000**\n",
			wantStatuses: []int{0},
		},
		{
			name:      "no trailer",
			input:     "hello\n",
			wantLines: []string{"hello"},
			wantErr:   true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, statuses, err := ParseOutput(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLines, lines)
			assert.Equal(t, tt.wantStatuses, statuses)
		})
	}
}

func TestOutcomeStatusHelpers(t *testing.T) {
	o := &Outcome{HTTPStatus: 200, Statuses: []int{200, 404, 200}}
	assert.False(t, o.AllStatus(200))
	assert.Equal(t, 404, o.FirstOther(200))

	o = &Outcome{HTTPStatus: 200, Statuses: []int{200, 200}}
	assert.True(t, o.AllStatus(200))
	assert.Equal(t, 200, o.FirstOther(200))

	o = &Outcome{HTTPStatus: 204}
	assert.True(t, o.AllStatus(204))
	assert.Equal(t, 204, o.FirstOther(200))
}

func TestCheckAuth(t *testing.T) {
	assert.NoError(t, CheckAuth(&Outcome{HTTPStatus: 204}, "u"))
	assert.Error(t, CheckAuth(&Outcome{HTTPStatus: 401}, "u"))
	assert.Error(t, CheckAuth(&Outcome{HTTPStatus: 200, Statuses: []int{200, 403, 200}}, "u"))
}
