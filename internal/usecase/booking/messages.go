package booking

import (
	"fmt"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-bot/internal/models"
)

const (
	MsgWelcome       = "👋 Salut! Bine ai venit la MolodoyBarbershop.\nAlege o acțiune de mai jos."
	MsgUseStart      = "Folosește /start pentru a face o programare."
	MsgAskPhone      = "📱 Trimite-mi numărul tău de telefon (format: +373XXXXXXX)."
	MsgInvalidPhone  = "⚠️ Număr invalid. Încearcă din nou (format: +373XXXXXXX) sau /cancel."
	MsgPhoneSaved    = "✅ Telefon salvat. Poți continua cu rezervarea: /start"
	MsgNoLocations   = "Nu sunt locații definite încă."
	MsgNoBarbers     = "Nu sunt barberii definiți pentru această locație încă."
	MsgNoSlots       = "Nu mai sunt sloturi libere pentru data aleasă. Alege altă zi."
	MsgDayExpired    = "Ziua aleasă nu mai este disponibilă. Alege altă zi."
	MsgSlotJustTaken = "⚠️ Slotul tocmai a fost ocupat. Te rog alege altă oră."
	MsgCancelled     = "❌ Programarea a fost anulată. Poți reîncepe cu /start."
	MsgStaleMenu     = "Acest meniu nu mai este activ. Folosește /start pentru a reîncepe."
	MsgApology       = "😔 A apărut o eroare. Te rog încearcă din nou."

	promptLocation = "📍 Alege locația:"
	promptBarber   = "💈 Alege barberul:"
	promptDay      = "🗓 Alege ziua:"
	promptTime     = "🕒 Alege ora pentru %s:"
	promptConfirm  = "Confirmezi programarea?\n\n• Barber: %s\n• Data: %s\n• Ora: %s\n• Nume: %s\n• Telefon: %s"
	msgBooked      = "✅ Programare creată pentru %s la %s. Mulțumim!"

	labelBook    = "Rezervă o programare"
	labelPhone   = "Actualizează telefonul"
	labelConfirm = "Confirmă ✅"
	labelCancel  = "Anulează ❌"

	phonePlaceholder = "—"
)

// Choice é uma opção de menu; Token é opaco para o gateway.
type Choice struct {
	Label string
	Token string
}

// Reply é uma instrução de renderização: texto e menu opcional.
type Reply struct {
	Text    string
	Choices []Choice
	Columns int
}

func notice(text string) Reply {
	return Reply{Text: text}
}

func choice(label string, tok domain.Token) Choice {
	return Choice{Label: label, Token: tok.String()}
}

func mainMenu() Reply {
	return Reply{
		Text: MsgWelcome,
		Choices: []Choice{
			choice(labelBook, domain.SimpleToken(domain.TokenStart)),
			choice(labelPhone, domain.SimpleToken(domain.TokenPhone)),
		},
		Columns: 1,
	}
}

func locationMenu(menu string, locs []models.Location) Reply {
	r := Reply{Text: promptLocation, Columns: 1}
	for _, l := range locs {
		r.Choices = append(r.Choices, choice(l.Name, domain.LocationToken(menu, l.ID)))
	}
	return r
}

func barberMenu(menu string, barbers []models.Barber) Reply {
	r := Reply{Text: promptBarber, Columns: 1}
	for _, b := range barbers {
		r.Choices = append(r.Choices, choice(b.Name, domain.BarberToken(menu, b.ID)))
	}
	return r
}

func dayMenu(menu string, days []domain.DayOption) Reply {
	r := Reply{Text: promptDay, Columns: 3}
	for _, d := range days {
		r.Choices = append(r.Choices, choice(d.Label, domain.DayToken(menu, d.Date)))
	}
	return r
}

func timeMenu(menu, date string, free []string) Reply {
	r := Reply{Text: fmt.Sprintf(promptTime, date), Columns: 3}
	for _, hm := range free {
		r.Choices = append(r.Choices, choice(hm, domain.TimeToken(menu, hm)))
	}
	return r
}

func confirmMenu(menu, barber, date, hm, name, phone string) Reply {
	if phone == "" {
		phone = phonePlaceholder
	}
	return Reply{
		Text: fmt.Sprintf(promptConfirm, barber, date, hm, name, phone),
		Choices: []Choice{
			choice(labelConfirm, domain.ConfirmToken(menu)),
			choice(labelCancel, domain.SimpleToken(domain.TokenCancel)),
		},
		Columns: 2,
	}
}

func bookedMessage(date, hm string) string {
	return fmt.Sprintf(msgBooked, date, hm)
}
