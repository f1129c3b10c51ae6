package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"<p>Hello <strong>world</strong></p>", "Hello world"},
		{"<p>First</p><p>Second</p>", "First\nSecond"},
		{"Line one<br/>Line two", "Line one\nLine two"},
		{"Fees &amp; taxes are &lt;due&gt;", "Fees & taxes are <due>"},
		{"5 < 10 and 10 > 5", "5 < 10 and 10 > 5"},
		{"<p>deposits < $500 are exempt</p>", "deposits < $500 are exempt"},
		{"plain text", "plain text"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, StripHTML(tc.in))
	}
}
