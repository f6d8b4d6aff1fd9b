package report

import "time"

// Locale holds the display strings for rendered reports. The reference
// deployment renders in Brazilian Portuguese; English is available and new
// locales only need a table entry.
type Locale struct {
	Code          string
	CSVHeader     [3]string
	DateFormat    string
	Weekdays      [7]string
	NonWorkingDay string
}

var PtBR = &Locale{
	Code:       "pt-BR",
	CSVHeader:  [3]string{"Data", "Dia da Semana", "Observação"},
	DateFormat: "02/01/2006",
	Weekdays: [7]string{
		"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
		"Quinta-feira", "Sexta-feira", "Sábado",
	},
	NonWorkingDay: "Dia não útil",
}

var EnUS = &Locale{
	Code:       "en-US",
	CSVHeader:  [3]string{"Date", "Weekday", "Notes"},
	DateFormat: "2006-01-02",
	Weekdays: [7]string{
		"Sunday", "Monday", "Tuesday", "Wednesday",
		"Thursday", "Friday", "Saturday",
	},
	NonWorkingDay: "Non-working day",
}

var locales = map[string]*Locale{
	PtBR.Code: PtBR,
	EnUS.Code: EnUS,
}

// LocaleByCode resolves a locale code, defaulting to pt-BR.
func LocaleByCode(code string) *Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return PtBR
}

func (l *Locale) WeekdayName(w time.Weekday) string {
	return l.Weekdays[w]
}
