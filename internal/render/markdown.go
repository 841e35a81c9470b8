// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a finished quote into a document: a Markdown
// quotation for people, or YAML and JSON for other tools.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/quotewise/pkg/types"
)

// Renderer writes a quote to w in one document format.
type Renderer interface {
	Render(w io.Writer, q types.Quote) error
}

// Client placeholders left in the document for the sales rep to fill in.
const (
	ClientNamePlaceholder    = "[Client Name]"
	ClientCompanyPlaceholder = "[Client Company]"
	ClientAddressPlaceholder = "[Client Address]"
	SignaturePlaceholder     = "[Your Name]"
)

var quotationTmpl = template.Must(template.New("quotation").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`# {{.Company}}

## Sales Quotation

**Quotation No.:** {{.Number}}
**Date:** {{.Date}}
**Valid Until:** {{.ValidUntil}}

**To:**
{{.ClientName}}
{{.ClientCompany}}
{{.ClientAddress}}

---

## Items
{{range .Lines}}
### {{.Index}}. {{.Name}}

- Quantity: {{.Quantity}}
{{- if .Approved}}
- Base unit price: {{.Base}}
- Net adjustment: {{.Net}}
- Final unit price: {{.Final}}
- Line total: {{.Total}}
{{- else}}
- Not quoted: {{.Status}}
{{- end}}
{{- if .Risk}}
- Risk: {{.Risk}}
{{- end}}
{{end}}
## Discount & Pricing Summary
{{range .Summary}}
- {{.}}
{{- else}}
- No price adjustments were applied.
{{- end}}
{{if .Notes}}
## Notes
{{range .Notes}}
- {{.}}
{{- end}}
{{end}}
## Grand Total: {{.GrandTotal}}

## Terms & Conditions
{{range $i, $t := .Terms}}
{{inc $i}}. {{$t}}
{{- end}}

Sincerely,

{{.Signature}}
{{.Company}}
`))

type quotationView struct {
	Company       string
	Number        string
	Date          string
	ValidUntil    string
	ClientName    string
	ClientCompany string
	ClientAddress string
	Lines         []lineView
	Summary       []string
	Notes         []string
	GrandTotal    string
	Terms         []string
	Signature     string
}

type lineView struct {
	Index    int
	Name     string
	Quantity int
	Approved bool
	Status   string
	Base     string
	Net      string
	Final    string
	Total    string
	Risk     string
}

// Markdown renders the customer-facing quotation document.
type Markdown struct {
	cfg types.QuoteConfig
}

// NewMarkdown creates a Markdown renderer using the company details and
// terms of cfg.
func NewMarkdown(cfg types.QuoteConfig) *Markdown {
	return &Markdown{cfg: cfg}
}

// Render writes q as a Markdown quotation.
func (m *Markdown) Render(w io.Writer, q types.Quote) error {
	if err := quotationTmpl.Execute(w, m.view(q)); err != nil {
		return fmt.Errorf("rendering quotation %s: %w", q.Number, err)
	}
	return nil
}

func (m *Markdown) view(q types.Quote) quotationView {
	issued := q.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	company := m.cfg.CompanyName
	if company == "" {
		company = "Quotation"
	}
	number := q.Number
	if number == "" {
		number = "DRAFT"
	}

	v := quotationView{
		Company:       company,
		Number:        number,
		Date:          issued.Format("January 2, 2006"),
		ValidUntil:    issued.AddDate(0, 0, m.cfg.ValidityDays).Format("January 2, 2006"),
		ClientName:    ClientNamePlaceholder,
		ClientCompany: ClientCompanyPlaceholder,
		ClientAddress: ClientAddressPlaceholder,
		Summary:       q.ReasoningSummary,
		Notes:         q.Notes,
		GrandTotal:    m.money(q.GrandTotal),
		Terms:         m.cfg.Terms,
		Signature:     SignaturePlaceholder,
	}
	for i, l := range q.Items {
		lv := lineView{
			Index:    i + 1,
			Name:     l.ProductName,
			Quantity: l.RequestedQuantity,
			Approved: l.Approved,
			Status:   l.Status,
		}
		if l.Approved {
			lv.Base = m.moneyPtr(l.BaseUnitPrice)
			lv.Final = m.moneyPtr(l.FinalUnitPrice)
			lv.Total = m.moneyPtr(l.TotalPrice)
			lv.Net = Percent(l.NetAdjustmentPercentage)
		}
		if l.Risk != nil && l.Risk.Level == types.RiskHigh {
			lv.Risk = "High. " + strings.Join(l.Risk.Reasons, " ")
		}
		v.Lines = append(v.Lines, lv)
	}
	return v
}

func (m *Markdown) money(d decimal.Decimal) string {
	return Money(m.cfg.Currency, d)
}

func (m *Markdown) moneyPtr(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return m.money(*d)
}

// Money formats d with two decimals, thousands separators, and an
// optional currency label, e.g. "INR 12,345.60".
func Money(currency string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String() + "." + frac
	if currency == "" {
		return out
	}
	return currency + " " + out
}

// Percent formats a signed percentage with two decimals, e.g. "-12.50%"
// or "+3.00%".
func Percent(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.IsPositive() {
		s = "+" + s
	}
	return s + "%"
}
