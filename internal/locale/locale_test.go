package locale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestForCountry(t *testing.T) {
	tests := []struct {
		country string
		want    Language
	}{
		{"DE", German},
		{"PL", Polish},
		{"de", German},
		{" pl ", Polish},
		{"AT", English},
		{"US", English},
		{"", English},
		{"XYZ", English},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			assert.Equal(t, tt.want, ForCountry(tt.country))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Language
		wantOK bool
	}{
		{"en", English, true},
		{"DE", German, true},
		{"pl-PL", Polish, true},
		{"de_AT", German, true},
		{"fr", Language("fr"), false},
		{"", Language(""), false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, language.German, German.Tag())
	assert.Equal(t, language.Polish, Polish.Tag())
	assert.Equal(t, language.English, Language("fr").Tag())
}

func TestContextRoundTrip(t *testing.T) {
	assert.Equal(t, DefaultContext, FromContext(context.Background()))

	ctx := WithContext(context.Background(), Context{Language: Polish, Country: "PL"})
	assert.Equal(t, Context{Language: Polish, Country: "PL"}, FromContext(ctx))

	ctx = WithContext(context.Background(), Context{Language: "fr", Country: "FR"})
	assert.Equal(t, Context{Language: English, Country: "FR"}, FromContext(ctx))
}

func TestMessagesFor(t *testing.T) {
	en := MessagesFor(English)
	assert.Equal(t, "SampadAI", en.Title)
	assert.Equal(t, "Because Your Money Deserves an A+ AI", en.Tagline)
	assert.Equal(t, "Successfully added to waitlist!", en.WaitlistAccepted)

	de := MessagesFor(German)
	assert.Equal(t, "Demnächst verfügbar", de.ComingSoon)
	assert.Equal(t, "Warteliste beitreten", de.JoinWaitlist)

	pl := MessagesFor(Polish)
	assert.Equal(t, "Wkrótce", pl.ComingSoon)
	assert.Equal(t, "Dołącz do listy", pl.JoinWaitlist)
}

func TestTranslationsComplete(t *testing.T) {
	for _, lang := range Supported {
		assert.Len(t, translations[lang], len(translations[English]), "language %s", lang)
	}
}
