package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func celebrationTemplate(c Celebration, appURL, appName string) (string, string) {
	name := cases.Title(language.English).String(c.User.PublicName())
	currencyCode := c.User.Currency

	var subject string
	var lines []string
	switch {
	case c.GoalUnlocked && c.LeveledUp:
		subject = fmt.Sprintf("You unlocked %s and reached level %d!", c.Goal.Name, c.User.Level)
	case c.GoalUnlocked:
		subject = fmt.Sprintf("You unlocked %s!", c.Goal.Name)
	default:
		subject = fmt.Sprintf("You reached level %d on %s!", c.User.Level, appName)
	}

	if c.GoalUnlocked {
		lines = append(lines, fmt.Sprintf("You saved %s and reached your goal \"%s\" (%s).",
			formatAmount(c.Goal.SavedAmount, currencyCode), c.Goal.Name, formatAmount(c.Goal.Price, currencyCode)))
	}
	if c.LeveledUp {
		lines = append(lines, fmt.Sprintf("You are now level %d with %s XP.", c.User.Level, printer.Sprint(c.User.XP)))
	}

	body := fmt.Sprintf(`Hi %s,

%s

Keep your streak going: %s

Best,
The %s Team`, name, strings.Join(lines, "\n"), appURL, appName)

	return subject, body
}

// formatAmount renders money with the ISO currency symbol, falling back to
// the plain amount and code for unknown currencies.
func formatAmount(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + code
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount.InexactFloat64())))
}
