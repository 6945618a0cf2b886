package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Don-calvins/Loan-Automation/internal/domain"
	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

// BodyBuilder produces the notification bodies. Both are buildable with
// no artifact, since a degraded run can send a summary-only message.
type BodyBuilder struct {
	tmpl *template.Template
}

// NewBodyBuilder parses the HTML body template once.
func NewBodyBuilder() *BodyBuilder {
	return &BodyBuilder{tmpl: template.Must(template.New("body").Parse(bodyTemplate))}
}

type bodyRow struct {
	BG            template.CSS
	CustomerName  string
	LoanID        string
	Amount        string
	Outstanding   string
	DueDate       string
	DaysLabel     string
	DaysColor     template.CSS
	Phone         string
	OfficerBranch string
	Status        string
	StatusColor   template.CSS
}

type bodyData struct {
	Organization string
	Title        string
	Generated    string
	Window       string

	TotalCount         int
	ActiveCount        int
	OverdueCount       int
	TotalOutstanding   string
	OverdueOutstanding string

	Rows []bodyRow
}

// HTML renders the full summary-plus-detail message body.
func (b *BodyBuilder) HTML(table domain.ReportTable, stats domain.SummaryStats, meta ports.ReportMeta) (string, error) {
	data := bodyData{
		Organization:       meta.Organization,
		Title:              meta.Title,
		Generated:          meta.ReferenceDate.Format("Monday, 02 January 2006"),
		Window:             fmt.Sprintf("Loans Due Within %d Days", meta.LookaheadDays),
		TotalCount:         stats.TotalCount,
		ActiveCount:        stats.ActiveCount,
		OverdueCount:       stats.OverdueCount,
		TotalOutstanding:   domain.FormatMoney(stats.TotalOutstanding),
		OverdueOutstanding: domain.FormatMoney(stats.OverdueOutstanding),
		Rows:               make([]bodyRow, 0, len(table)),
	}

	for i, rec := range table {
		bg := template.CSS("#ffffff")
		switch {
		case rec.FlaggedOverdue():
			bg = "#ffe0e0"
		case i%2 == 1:
			bg = "#f5f8ff"
		}

		daysLabel := fmt.Sprintf("%d", rec.DaysRemaining)
		daysColor := template.CSS("#1b7a1b")
		switch {
		case rec.DaysRemaining < 0:
			daysLabel = fmt.Sprintf("%d (Overdue)", rec.DaysRemaining)
			daysColor = "#cc0000"
		case rec.DaysRemaining <= 3:
			daysColor = "#e65100"
		}

		statusColor := template.CSS("green")
		if rec.Status == domain.StatusOverdue {
			statusColor = "red"
		}

		data.Rows = append(data.Rows, bodyRow{
			BG:            bg,
			CustomerName:  rec.CustomerName,
			LoanID:        rec.LoanID,
			Amount:        domain.FormatMoney(rec.AmountBorrowed),
			Outstanding:   domain.FormatMoney(rec.OutstandingBalance),
			DueDate:       rec.DueDate.Format("2006-01-02"),
			DaysLabel:     daysLabel,
			DaysColor:     daysColor,
			Phone:         rec.Phone,
			OfficerBranch: rec.OfficerBranch,
			Status:        string(rec.Status),
			StatusColor:   statusColor,
		})
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute body template: %w", err)
	}
	return sb.String(), nil
}

// Text renders the short plain-text digest used as the HTML alternative
// and as the whole body in legacy mode.
func (b *BodyBuilder) Text(stats domain.SummaryStats, meta ports.ReportMeta, hasAttachment bool) string {
	var sb strings.Builder

	sb.WriteString("Hello Credit & Loans Team,\n\n")
	if hasAttachment {
		fmt.Fprintf(&sb, "Attached is the report for loans due within the next %d days.\n\n", meta.LookaheadDays)
	} else {
		fmt.Fprintf(&sb, "Summary of loans due within the next %d days.\n\n", meta.LookaheadDays)
	}

	fmt.Fprintf(&sb, "Report Date: %s\n", meta.ReferenceDate.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Total Loans Due: %d\n", stats.TotalCount)
	fmt.Fprintf(&sb, "Overdue Loans: %d\n", stats.OverdueCount)
	fmt.Fprintf(&sb, "Total Outstanding: %s\n", domain.FormatMoney(stats.TotalOutstanding))

	fmt.Fprintf(&sb, "\nRegards,\n%s Loan Report Bot\n", meta.Organization)

	return sb.String()
}

const bodyTemplate = `<html><body style="font-family:Arial, sans-serif; color:#222; font-size:14px;">
  <div style="background:#1f3864;color:white;padding:20px 30px;border-radius:6px 6px 0 0;">
    <h2 style="margin:0;">{{.Organization}}</h2>
    <p style="margin:5px 0 0;">{{.Title}} — {{.Window}}</p>
    <p style="margin:4px 0 0;font-size:12px;opacity:0.8;">Generated: {{.Generated}}</p>
  </div>

  <div style="background:#ebf3fb;padding:16px 30px;border:1px solid #cce0f5;">
    <h3 style="margin:0 0 10px;color:#1f3864;">Report Summary</h3>
    <table id="summary" style="border-collapse:collapse;width:100%;max-width:600px;">
      <tr>
        <td style="padding:6px 12px;background:#fff;border:1px solid #ddd;"><b>Total Loans in Report</b></td>
        <td style="padding:6px 12px;background:#fff;border:1px solid #ddd;text-align:center;"><b>{{.TotalCount}}</b></td>
      </tr>
      <tr>
        <td style="padding:6px 12px;background:#e8f5e9;border:1px solid #ddd;">Active Loans</td>
        <td style="padding:6px 12px;background:#e8f5e9;border:1px solid #ddd;text-align:center;color:green;font-weight:bold;">{{.ActiveCount}}</td>
      </tr>
      <tr>
        <td style="padding:6px 12px;background:#ffe0e0;border:1px solid #ddd;">Overdue Loans</td>
        <td style="padding:6px 12px;background:#ffe0e0;border:1px solid #ddd;text-align:center;color:red;font-weight:bold;">{{.OverdueCount}}</td>
      </tr>
      <tr>
        <td style="padding:6px 12px;background:#fff;border:1px solid #ddd;">Total Outstanding Balance</td>
        <td style="padding:6px 12px;background:#fff;border:1px solid #ddd;text-align:center;"><b>{{.TotalOutstanding}}</b></td>
      </tr>
      <tr>
        <td style="padding:6px 12px;background:#ffe0e0;border:1px solid #ddd;">Overdue Outstanding</td>
        <td style="padding:6px 12px;background:#ffe0e0;border:1px solid #ddd;text-align:center;color:red;font-weight:bold;">{{.OverdueOutstanding}}</td>
      </tr>
    </table>
  </div>

  <div style="padding:20px 30px;">
    <h3 style="color:#1f3864;">Loan Details</h3>
    <table id="detail" style="border-collapse:collapse;width:100%;font-size:12px;">
      <thead>
        <tr style="background:#1f3864;color:white;">
          <th style="padding:8px;text-align:left;">Customer Name</th>
          <th style="padding:8px;text-align:left;">Loan ID</th>
          <th style="padding:8px;text-align:right;">Amount Borrowed</th>
          <th style="padding:8px;text-align:right;">Outstanding Balance</th>
          <th style="padding:8px;text-align:center;">Due Date</th>
          <th style="padding:8px;text-align:center;">Days Remaining</th>
          <th style="padding:8px;text-align:left;">Phone</th>
          <th style="padding:8px;text-align:left;">Loan Officer / Branch</th>
          <th style="padding:8px;text-align:center;">Status</th>
        </tr>
      </thead>
      <tbody>
        {{range .Rows}}<tr style="background-color:{{.BG}};">
          <td>{{.CustomerName}}</td>
          <td>{{.LoanID}}</td>
          <td style="text-align:right;">{{.Amount}}</td>
          <td style="text-align:right;">{{.Outstanding}}</td>
          <td style="text-align:center;">{{.DueDate}}</td>
          <td style="text-align:center;"><span style="color:{{.DaysColor}};font-weight:bold;">{{.DaysLabel}}</span></td>
          <td>{{.Phone}}</td>
          <td>{{.OfficerBranch}}</td>
          <td style="color:{{.StatusColor}};font-weight:bold;text-align:center;">{{.Status}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>

  <div style="background:#f0f0f0;padding:12px 30px;border-top:2px solid #1f3864;font-size:11px;color:#666;">
    This is an automated report. Please do not reply to this email.
    Full details are in the attached file. | {{.Organization}} — Loan Monitoring
  </div>
</body></html>
`
