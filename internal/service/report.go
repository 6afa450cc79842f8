package service

import (
	"strconv"
	"strings"

	"github.com/guttosm/tradeactivity/internal/currency"
	"github.com/guttosm/tradeactivity/internal/domain/models"
)

// Section titles, in print order.
var sections = []struct {
	category models.Category
	title    string
}{
	{models.InsufficientlyTraded, "Insufficiently traded assets:"},
	{models.NotTraded, "Not traded assets:"},
	{models.NewlyAdded, "New assets (in warming up phase):"},
	{models.SufficientlyTraded, "Sufficiently traded assets:"},
}

// FormatReport renders r as the plain text trade activity report.
//
//	Date for checking trade activity: 2018-09-01T
//
//	Assets to remove (2):
//	AAA
//	BBB
//
//	<sections separated by blank lines>
func FormatReport(r *models.Report) string {
	codes := make([]string, len(r.ToRemove))
	for i, a := range r.ToRemove {
		codes[i] = a.Code
	}

	var b strings.Builder
	b.WriteString("Date for checking trade activity: ")
	b.WriteString(r.Cutoff.Format("2006-01-02"))
	b.WriteString("T\n\nAssets to remove (")
	b.WriteString(strconv.Itoa(len(codes)))
	b.WriteString("):\n")
	b.WriteString(strings.Join(codes, "\n"))

	for _, s := range sections {
		b.WriteString("\n\n\n")
		b.WriteString(s.title)
		for _, cl := range r.Bucket(s.category) {
			b.WriteString("\n")
			b.WriteString(formatEntry(cl))
		}
	}
	return b.String()
}

func formatEntry(cl models.Classification) string {
	label := currency.NameAndCode(cl.Asset.Name, cl.Asset.Code)
	if cl.Category == models.NotTraded {
		return label
	}
	return label + ": Trade amount: " + currency.FormatAmount(cl.TotalAmount) +
		", number of trades: " + strconv.Itoa(cl.TradeCount)
}
