package pricing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"capprice/internal/pricing"
)

func TestExtractReportHTML(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{
			name: "first array element laudoHtml",
			raw:  `[{"laudoHtml":"<p>first</p>"},{"laudoHtml":"<p>second</p>"}]`,
			want: "<p>first</p>",
		},
		{
			name: "blank laudoHtml on first element falls through to htmls",
			raw:  `[{"laudoHtml":"   ","dados":{"htmls":["<p>legacy</p>"]}}]`,
			want: "<p>legacy</p>",
		},
		{
			name: "root object laudoHtml",
			raw:  map[string]any{"laudoHtml": "<p>root</p>", "htmls": []any{"<p>legacy</p>"}},
			want: "<p>root</p>",
		},
		{
			name: "non-string laudoHtml is ignored",
			raw:  `{"laudoHtml":42,"x":{"htmls":["<p>legacy</p>"]}}`,
			want: "<p>legacy</p>",
		},
		{
			name: "nested htmls",
			raw:  `{"result":[{"json":{"dados":{"htmls":["<h1>r</h1>","<h1>other</h1>"]}}}]}`,
			want: "<h1>r</h1>",
		},
		{
			name: "empty htmls skipped",
			raw:  `{"a":{"htmls":[]},"b":{"htmls":["<b>b</b>"]}}`,
			want: "<b>b</b>",
		},
		{
			name: "object entry uses its html member",
			raw:  `{"htmls":[{"content":"","html":"<i>obj</i>"}]}`,
			want: "<i>obj</i>",
		},
		{
			name: "object entry without body keys is encoded",
			raw:  `{"htmls":[{"b":1,"a":2}]}`,
			want: `{"a":2,"b":1}`,
		},
		{
			name: "number entry is formatted",
			raw:  `{"htmls":[12.5]}`,
			want: "12.5",
		},
		{
			name: "null entry is absent",
			raw:  `{"htmls":[null]}`,
			want: "",
		},
		{
			name: "unparseable string",
			raw:  "not json{{",
			want: "",
		},
		{
			name: "nothing to find",
			raw:  `{"metaOnly":true}`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.ExtractReportHTML(tt.raw))
		})
	}
}

func TestExtractReportHTML_DepthLimit(t *testing.T) {
	within := strings.Repeat(`{"c":`, 15) + `{"htmls":["<p>deep</p>"]}` + strings.Repeat(`}`, 15)
	assert.Equal(t, "<p>deep</p>", pricing.ExtractReportHTML(within))

	beyond := strings.Repeat(`{"c":`, 16) + `{"htmls":["<p>deep</p>"]}` + strings.Repeat(`}`, 16)
	assert.Empty(t, pricing.ExtractReportHTML(beyond))
}
