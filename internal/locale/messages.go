package locale

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys registered in the catalog.
const (
	keyTitle            = "page.title"
	keyTagline          = "page.tagline"
	keyComingSoon       = "page.coming_soon"
	keyDescription      = "page.description"
	keyEmailPlaceholder = "waitlist.email_placeholder"
	keyJoinWaitlist     = "waitlist.join"
	keySuccessMessage   = "waitlist.success"
	keyWaitlistAccepted = "waitlist.accepted"
	keyInvalidEmail     = "waitlist.invalid_email"
	keyRSVPHeading      = "rsvp.heading"
	keyRSVPName         = "rsvp.name"
	keyRSVPGuests       = "rsvp.guests"
	keyRSVPSubmit       = "rsvp.submit"
	keyRSVPAccepted     = "rsvp.accepted"
	keyRSVPMissing      = "rsvp.missing_fields"
	keyRSVPGuestsRange  = "rsvp.guests_range"
	keyInvalidBody      = "request.invalid_body"
)

var translations = map[Language]map[string]string{
	English: {
		keyTitle:            "SampadAI",
		keyTagline:          "Because Your Money Deserves an A+ AI",
		keyComingSoon:       "Coming Soon",
		keyDescription:      "We are building something amazing. Join our waitlist to be the first to know when we launch.",
		keyEmailPlaceholder: "Enter your email address",
		keyJoinWaitlist:     "Join Waitlist",
		keySuccessMessage:   "Thank you! You've been added to our waitlist. We'll notify you when we launch.",
		keyWaitlistAccepted: "Successfully added to waitlist!",
		keyInvalidEmail:     "Please provide a valid email address",
		keyRSVPHeading:      "Join the launch event",
		keyRSVPName:         "Your name",
		keyRSVPGuests:       "Number of guests",
		keyRSVPSubmit:       "RSVP",
		keyRSVPAccepted:     "RSVP received!",
		keyRSVPMissing:      "Name and number of guests are required",
		keyRSVPGuestsRange:  "Number of guests must be between 1 and 50",
		keyInvalidBody:      "Invalid request body",
	},
	German: {
		keyTitle:            "SampadAI",
		keyTagline:          "Weil Ihr Geld eine A+ KI verdient",
		keyComingSoon:       "Demnächst verfügbar",
		keyDescription:      "Wir entwickeln etwas Großartiges. Treten Sie unserer Warteliste bei, um als Erster zu erfahren, wann wir starten.",
		keyEmailPlaceholder: "E-Mail-Adresse eingeben",
		keyJoinWaitlist:     "Warteliste beitreten",
		keySuccessMessage:   "Vielen Dank! Sie wurden zu unserer Warteliste hinzugefügt. Wir benachrichtigen Sie, wenn wir starten.",
		keyWaitlistAccepted: "Erfolgreich zur Warteliste hinzugefügt!",
		keyInvalidEmail:     "Bitte geben Sie eine gültige E-Mail-Adresse ein",
		keyRSVPHeading:      "Zum Launch-Event anmelden",
		keyRSVPName:         "Ihr Name",
		keyRSVPGuests:       "Anzahl der Gäste",
		keyRSVPSubmit:       "Zusagen",
		keyRSVPAccepted:     "Zusage erhalten!",
		keyRSVPMissing:      "Name und Anzahl der Gäste sind erforderlich",
		keyRSVPGuestsRange:  "Die Anzahl der Gäste muss zwischen 1 und 50 liegen",
		keyInvalidBody:      "Ungültige Anfrage",
	},
	Polish: {
		keyTitle:            "SampadAI",
		keyTagline:          "Ponieważ Twoje pieniądze zasługują na AI klasy A+",
		keyComingSoon:       "Wkrótce",
		keyDescription:      "Tworzymy coś niesamowitego. Dołącz do naszej listy oczekujących, aby jako pierwszy dowiedzieć się o naszym uruchomieniu.",
		keyEmailPlaceholder: "Wprowadź swój adres e-mail",
		keyJoinWaitlist:     "Dołącz do listy",
		keySuccessMessage:   "Dziękujemy! Zostałeś dodany do naszej listy oczekujących. Powiadomimy Cię, gdy uruchomimy serwis.",
		keyWaitlistAccepted: "Pomyślnie dodano do listy oczekujących!",
		keyInvalidEmail:     "Podaj prawidłowy adres e-mail",
		keyRSVPHeading:      "Weź udział w wydarzeniu premierowym",
		keyRSVPName:         "Twoje imię",
		keyRSVPGuests:       "Liczba gości",
		keyRSVPSubmit:       "Potwierdź",
		keyRSVPAccepted:     "Potwierdzenie otrzymane!",
		keyRSVPMissing:      "Imię i liczba gości są wymagane",
		keyRSVPGuestsRange:  "Liczba gości musi wynosić od 1 do 50",
		keyInvalidBody:      "Nieprawidłowe żądanie",
	},
}

var messageCatalog = mustBuildCatalog()

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(lang.Tag(), key, msg); err != nil {
				panic(fmt.Sprintf("locale: register %s/%s: %v", lang, key, err))
			}
		}
	}
	return b
}

// Printer returns a message printer for l backed by the landing page catalog.
func Printer(l Language) *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(messageCatalog))
}

// Messages is the translated copy for one language.
type Messages struct {
	Title            string
	Tagline          string
	ComingSoon       string
	Description      string
	EmailPlaceholder string
	JoinWaitlist     string
	SuccessMessage   string
	WaitlistAccepted string
	InvalidEmail     string
	RSVPHeading      string
	RSVPName         string
	RSVPGuests       string
	RSVPSubmit       string
	RSVPAccepted     string
	RSVPMissing      string
	RSVPGuestsRange  string
	InvalidBody      string
}

// MessagesFor resolves every page string for l.
func MessagesFor(l Language) Messages {
	p := Printer(l)
	return Messages{
		Title:            p.Sprintf(keyTitle),
		Tagline:          p.Sprintf(keyTagline),
		ComingSoon:       p.Sprintf(keyComingSoon),
		Description:      p.Sprintf(keyDescription),
		EmailPlaceholder: p.Sprintf(keyEmailPlaceholder),
		JoinWaitlist:     p.Sprintf(keyJoinWaitlist),
		SuccessMessage:   p.Sprintf(keySuccessMessage),
		WaitlistAccepted: p.Sprintf(keyWaitlistAccepted),
		InvalidEmail:     p.Sprintf(keyInvalidEmail),
		RSVPHeading:      p.Sprintf(keyRSVPHeading),
		RSVPName:         p.Sprintf(keyRSVPName),
		RSVPGuests:       p.Sprintf(keyRSVPGuests),
		RSVPSubmit:       p.Sprintf(keyRSVPSubmit),
		RSVPAccepted:     p.Sprintf(keyRSVPAccepted),
		RSVPMissing:      p.Sprintf(keyRSVPMissing),
		RSVPGuestsRange:  p.Sprintf(keyRSVPGuestsRange),
		InvalidBody:      p.Sprintf(keyInvalidBody),
	}
}
