package column

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

var (
	dateTags = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.French,
		language.Japanese,
	}
	dateLayouts = []string{
		"1/2/2006, 3:04:05 PM",
		"02/01/2006, 15:04:05",
		"2.1.2006, 15:04:05",
		"02/01/2006 15:04:05",
		"2006/1/2 15:04:05",
	}
	dateMatcher = language.NewMatcher(dateTags)
)

// DateFormat formats date columns for a locale.
type DateFormat struct {
	Layout   string
	Location *time.Location
}

// NewDateFormat picks the closest supported layout for locale, shown in loc.
// An empty locale means American English.
func NewDateFormat(locale string, loc *time.Location) (df DateFormat, err error) {

	if loc == nil {
		loc = time.Local
	}

	tag := language.AmericanEnglish
	if locale != "" {
		tag, err = language.Parse(locale)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse locale %q", locale)
			return
		}
	}

	_, idx, _ := dateMatcher.Match(tag)

	df = DateFormat{
		Layout:   dateLayouts[idx],
		Location: loc,
	}
	return
}

// Format renders tm in the layout and location.
func (df DateFormat) Format(tm time.Time) string {

	loc := df.Location
	if loc == nil {
		loc = time.Local
	}
	layout := df.Layout
	if layout == "" {
		layout = dateLayouts[0]
	}
	return tm.In(loc).Format(layout)
}
