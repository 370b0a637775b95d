package report

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/simaogato/assetboard-backend/internal/domain"
	"github.com/simaogato/assetboard-backend/internal/usecase/aggregate"
)

// maxComments caps the comments listed under a summary
const maxComments = 5

// SummaryMarkdown renders the dashboard headline, the period history, the
// asset mix and the most recent comments as markdown
func SummaryMarkdown(res *aggregate.Result, comments []domain.CommentEntry, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Asset Summary (%s)", res.View))

	if len(res.Periods) == 0 {
		doc.PlainText("No snapshots recorded yet.")
		return doc.String()
	}

	doc.PlainText(fmt.Sprintf("Net worth on %s: %s (%s since %s)",
		res.Latest.Date,
		FormatAmount(res.Latest.NetWorth, currency),
		FormatChange(res.Delta, currency),
		previousLabel(res),
	))

	doc.H2("History")
	rows := make([][]string, 0, len(res.Periods))
	for i := len(res.Periods) - 1; i >= 0; i-- {
		p := res.Periods[i]
		rows = append(rows, []string{
			p.Date,
			FormatAmount(p.TotalAsset, currency),
			FormatAmount(p.LongLoan, currency),
			FormatAmount(p.NetWorth, currency),
			FormatChange(p.Change, currency),
			FormatPct(p.ChangePct),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Total Asset", "Long Loan", "Net Worth", "Change", "%"},
		Rows:   rows,
	})

	doc.H2("Asset Mix")
	mix := md.TableSet{Header: []string{"Category", "Amount", "Share"}}
	shares := map[string]int64{
		aggregate.CategoryCash:    res.Latest.PctCash,
		aggregate.CategorySavings: res.Latest.PctSavings,
		aggregate.CategoryStock:   res.Latest.PctStock,
		aggregate.CategoryFixed:   res.Latest.PctFixed,
	}
	for _, s := range res.Distribution {
		mix.Rows = append(mix.Rows, []string{s.Name, FormatAmount(s.Value, currency), strconv.FormatInt(shares[s.Name], 10) + "%"})
	}
	doc.Table(mix)

	if len(comments) > 0 {
		doc.H2("Recent Comments")
		items := make([]string, 0, maxComments)
		for i, c := range comments {
			if i == maxComments {
				break
			}
			items = append(items, fmt.Sprintf("%s %s: %s", c.Date, c.Owner, c.Message))
		}
		doc.BulletList(items...)
	}

	return doc.String()
}

func previousLabel(res *aggregate.Result) string {
	if len(res.Periods) < 2 {
		return "start"
	}
	return res.Previous.Date
}
