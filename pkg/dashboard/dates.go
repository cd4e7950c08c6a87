package dashboard

import (
	"net/http"
	"time"

	"github.com/brazucaphish/console/pkg/i18n"
)

// Layouts the backend has been seen to use for timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	http.TimeFormat,
	time.RFC1123Z,
	"2006-01-02",
}

// FormatDate renders a backend timestamp as a short local date. Unparseable values are
// returned unchanged.
func FormatDate(lang i18n.Language, value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if lang == i18n.Portuguese {
			return t.Format("02/01/2006")
		}
		return t.Format("1/2/2006")
	}
	return value
}
