package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

// Badge and change colors, matching the classic bootstrap palette.
const (
	colorBuy     = "#28a745"
	colorSell    = "#dc3545"
	colorHold    = "#ffc107"
	colorUp      = "#28a745"
	colorDown    = "#dc3545"
	colorNeutral = "#6c757d"
)

// FormatSubject builds the digest email subject line.
func FormatSubject(report *model.DigestReport) string {
	return fmt.Sprintf("Portfolio digest | %s | total $%.0f",
		report.GeneratedAt.Format("2006-01-02"), report.Summary.NetWorth)
}

// FormatDigestHTML renders the full digest report as an inline-CSS HTML email.
func FormatDigestHTML(report *model.DigestReport) string {
	var b strings.Builder

	b.WriteString(`<html><body style="font-family: Arial, sans-serif; color: #212529; max-width: 900px; margin: 0 auto;">`)

	// Header with portfolio summary
	b.WriteString(fmt.Sprintf(`<h2 style="color: #0066cc;">Portfolio digest | %s</h2>`,
		report.GeneratedAt.Format("2006-01-02")))
	s := report.Summary
	changeColor := changeColorFor(s.DayChange)
	b.WriteString(`<table style="border-collapse: collapse; margin-bottom: 24px;"><tr>`)
	b.WriteString(summaryCell("Total value", fmt.Sprintf("$%.2f", s.TotalValue)))
	b.WriteString(summaryCell("Cash", fmt.Sprintf("$%.2f", s.Cash)))
	b.WriteString(summaryCell("Net worth", fmt.Sprintf("$%.2f", s.NetWorth)))
	b.WriteString(summaryCell("Day change", fmt.Sprintf(`<span style="color: %s;">%+.2f (%+.2f%%)</span>`,
		changeColor, s.DayChange, s.DayChangePct)))
	b.WriteString(`</tr></table>`)

	// Per-holding section
	for _, st := range report.Stocks {
		writeStock(&b, st)
	}

	// Rebalancing section
	writePlan(&b, report.Plan)

	b.WriteString(`<p style="color: #999; font-size: 11px; margin-top: 32px;">Automated digest. Not investment advice.</p>`)
	b.WriteString(`</body></html>`)
	return b.String()
}

func summaryCell(label, value string) string {
	return fmt.Sprintf(`<td style="padding: 8px 24px 8px 0;"><small style="color: #666;">%s</small><br><b>%s</b></td>`,
		label, value)
}

func writeStock(b *strings.Builder, st model.StockReport) {
	b.WriteString(`<div style="border: 1px solid #dee2e6; border-radius: 8px; padding: 16px; margin-bottom: 16px;">`)

	changeColor := changeColorFor(st.ChangePct)
	b.WriteString(fmt.Sprintf(
		`<h3 style="margin: 0 0 4px 0;"><span style="color: #0066cc;">%s</span> <small style="color: #666; font-weight: normal;">%s</small> %s</h3>`,
		html.EscapeString(st.Ticker), html.EscapeString(st.Company), badge(st.Recommendation.Action)))
	b.WriteString(fmt.Sprintf(
		`<div>Price: $%.2f | Prev: $%.2f | <span style="color: %s; font-weight: bold;">%+.2f%%</span></div>`,
		st.Price, st.PrevClose, changeColor, st.ChangePct))

	if st.Quantity > 0 {
		pnlColor := changeColorFor(st.PnLPct)
		b.WriteString(fmt.Sprintf(
			`<div style="color: #444;">%.2f shares | value $%.2f | <span style="color: %s;">P&amp;L %+.2f (%+.2f%%)</span></div>`,
			st.Quantity, st.Value, pnlColor, st.PnL, st.PnLPct))
		b.WriteString(fmt.Sprintf(`<div style="font-size: 12px; color: #444;">Weight %.1f%% vs target %.1f%% %s</div>`,
			st.CurrentWeight, st.TargetWeight, weightMarker(st.CurrentWeight, st.TargetWeight)))
	}

	if len(st.Recommendation.Rationale) > 0 {
		b.WriteString(`<ul style="margin: 8px 0; padding-left: 20px; font-size: 13px;">`)
		for _, r := range st.Recommendation.Rationale {
			style := ""
			if strings.HasPrefix(r, "conflicting signal") {
				style = ` style="color: #ff6600; font-weight: bold;"`
			}
			b.WriteString(fmt.Sprintf(`<li%s>%s</li>`, style, html.EscapeString(r)))
		}
		b.WriteString(`</ul>`)
	}

	if st.TechnicalSummary != "" {
		b.WriteString(fmt.Sprintf(`<div style="font-size: 12px; color: #666;">Technical: %s</div>`,
			html.EscapeString(st.TechnicalSummary)))
	}
	if st.FundamentalSummary != "" {
		b.WriteString(fmt.Sprintf(`<div style="font-size: 12px; color: #666;">Fundamental: %s</div>`,
			html.EscapeString(st.FundamentalSummary)))
	}

	if st.Advisory != "" {
		b.WriteString(fmt.Sprintf(
			`<div style="background-color: #f8f9fa; border-radius: 4px; padding: 8px; margin-top: 8px; font-size: 13px; white-space: pre-wrap;">%s</div>`,
			html.EscapeString(st.Advisory)))
	}

	if len(st.Articles) > 0 {
		b.WriteString(`<div style="margin-top: 8px; font-size: 12px;">`)
		for i, a := range st.Articles {
			if i >= 5 {
				break
			}
			b.WriteString(fmt.Sprintf(`<div>&bull; <a href="%s" style="color: #0066cc;">%s</a> <small style="color: #999;">(%s)</small></div>`,
				html.EscapeString(a.Link), html.EscapeString(a.Title), html.EscapeString(a.Source)))
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`</div>`)
}

func writePlan(b *strings.Builder, plan *model.RebalancePlan) {
	if plan == nil {
		return
	}

	b.WriteString(`<h3 style="color: #0066cc;">Rebalancing</h3>`)

	if plan.Skipped {
		b.WriteString(fmt.Sprintf(`<p style="color: #dc3545;">Rebalancing skipped: %s</p>`,
			html.EscapeString(plan.SkipReason)))
		return
	}

	b.WriteString(`<table style="border-collapse: collapse; width: 100%; font-size: 13px;">`)
	b.WriteString(`<tr style="background-color: #f8f9fa;">` +
		th("Ticker") + th("Weight") + th("Target") + th("Deviation") + th("Action") + `</tr>`)

	for _, e := range plan.Entries {
		action := html.EscapeString(e.Reason)
		if e.HasTrade {
			verb := "Buy"
			color := colorBuy
			if e.Quantity < 0 {
				verb = "Sell"
				color = colorSell
			}
			action = fmt.Sprintf(`<span style="color: %s; font-weight: bold;">%s %.2f shares ($%.2f)</span> %s`,
				color, verb, abs(e.Quantity), abs(e.Value), html.EscapeString(e.Reason))
		}
		b.WriteString(fmt.Sprintf(`<tr>%s%s%s%s%s</tr>`,
			td(html.EscapeString(e.Ticker)),
			td(fmt.Sprintf("%.1f%%", e.CurrentWeight)),
			td(fmt.Sprintf("%.1f%%", e.TargetWeight)),
			td(fmt.Sprintf("%+.1fpp", e.Deviation)),
			td(action)))
	}
	b.WriteString(`</table>`)
	b.WriteString(fmt.Sprintf(`<p style="font-size: 12px; color: #666;">Valuation snapshot: $%.2f</p>`, plan.TotalValue))
}

func th(s string) string {
	return fmt.Sprintf(`<th style="padding: 8px; border-bottom: 2px solid #dee2e6; text-align: left;">%s</th>`, s)
}

func td(s string) string {
	return fmt.Sprintf(`<td style="padding: 8px; border-bottom: 1px solid #dee2e6;">%s</td>`, s)
}

func badge(action model.Action) string {
	color := colorHold
	switch action {
	case model.ActionBuy:
		color = colorBuy
	case model.ActionSell:
		color = colorSell
	}
	return fmt.Sprintf(`<span style="background-color: %s; color: white; padding: 4px 12px; border-radius: 12px; font-size: 12px; font-weight: bold;">%s</span>`,
		color, action)
}

func weightMarker(current, target float64) string {
	switch {
	case current > target:
		return `<span style="color: #ff6600;">&uarr; overweight</span>`
	case current < target:
		return `<span style="color: #0066cc;">&darr; underweight</span>`
	default:
		return ""
	}
}

func changeColorFor(v float64) string {
	switch {
	case v > 0:
		return colorUp
	case v < 0:
		return colorDown
	default:
		return colorNeutral
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
