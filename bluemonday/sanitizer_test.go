package bluemonday_test

import (
	"testing"

	"github.com/mlapinski/offprint"
	"github.com/mlapinski/offprint/bluemonday"
	"github.com/stretchr/testify/assert"
)

// Ensure Sanitizer implements offprint.Sanitizer at compile time.
var _ offprint.Sanitizer = (*bluemonday.Sanitizer)(nil)

func TestSanitizer_SanitizeInline(t *testing.T) {
	t.Parallel()

	s := bluemonday.NewSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "emphasis survives",
			in:   `Markets <em>tumbled</em> and <strong>rallied</strong>`,
			want: `Markets <em>tumbled</em> and <strong>rallied</strong>`,
		},
		{
			name: "links unwrap to text",
			in:   `See <a href="https://example.com">the report</a> for details`,
			want: `See the report for details`,
		},
		{
			name: "scripts are removed",
			in:   `Before<script>alert(1)</script> after`,
			want: `Before after`,
		},
		{
			name: "event handlers are stripped",
			in:   `<em onclick="steal()">word</em>`,
			want: `<em>word</em>`,
		},
		{
			name: "small-caps span attribute survives",
			in:   `<span data-caps="initial">NATO</span> summit`,
			want: `<span data-caps="initial">NATO</span> summit`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, s.SanitizeInline(tt.in))
		})
	}
}
