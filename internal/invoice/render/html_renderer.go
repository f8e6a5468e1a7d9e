package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="it">
<head>
  <meta charset="utf-8" />
  <title>Fattura {{.Invoice.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #111827;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta { text-align: right; font-size: 14px; }
    .meta .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section { margin-bottom: 24px; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
    td.num, th.num { text-align: right; }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals { width: 320px; margin-left: auto; margin-top: 12px; font-size: 14px; }
    .totals td { padding: 4px 10px; border: none; }
    .totals tr.grand td { border-top: 1px solid #111827; font-weight: bold; }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <div><strong>{{.Studio.Name}}</strong></div>
        {{if .Studio.Address}}<div>{{.Studio.Address}}</div>{{end}}
        {{if .Studio.VATNumber}}<div>P.IVA {{.Studio.VATNumber}}</div>{{end}}
        {{if .Studio.FiscalCode}}<div>C.F. {{.Studio.FiscalCode}}</div>{{end}}
        {{if .Studio.Email}}<div>{{.Studio.Email}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Fattura</div>
        <div><strong>{{.Invoice.Number}}</strong></div>
        <div>Data: {{formatDate .Invoice.Date}}</div>
        {{if .Invoice.DueDate}}<div>Scadenza: {{formatDatePtr .Invoice.DueDate}}</div>{{end}}
        <div>Stato: {{.Invoice.Status}}{{if .Invoice.Overdue}} (scaduta){{end}}</div>
      </div>
    </div>

    <div class="section">
      <div class="label">Intestatario</div>
      <div><strong>{{.Client.Name}}</strong></div>
      {{if .Client.Address}}<div>{{.Client.Address}}</div>{{end}}
      {{if .Client.FiscalCode}}<div>C.F. {{.Client.FiscalCode}}</div>{{end}}
      {{if .Client.VATNumber}}<div>P.IVA {{.Client.VATNumber}}</div>{{end}}
      {{if .CaseNumber}}<div>Pratica {{.CaseNumber}}</div>{{end}}
    </div>

    <div class="section">
      <table>
        <thead>
          <tr>
            <th>Descrizione</th>
            <th>Tipo</th>
            <th class="num">Importo</th>
          </tr>
        </thead>
        <tbody>
          {{range .Invoice.Lines}}
          <tr>
            <td>{{.Description}}</td>
            <td>{{.Type}}</td>
            <td class="num">{{formatEuro .Amount}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      <table class="totals">
        <tr><td>Imponibile</td><td class="num">{{formatEuro .Invoice.Totals.Imponibile}}</td></tr>
        <tr><td>Cassa</td><td class="num">{{formatEuro .Invoice.Totals.Cassa}}</td></tr>
        <tr><td>IVA</td><td class="num">{{formatEuro .Invoice.Totals.Iva}}</td></tr>
        <tr><td>Ritenuta d'acconto</td><td class="num">-{{formatEuro .Invoice.Totals.Ritenuta}}</td></tr>
        {{if gt .Invoice.Totals.Bollo 0.0}}<tr><td>Bollo</td><td class="num">{{formatEuro .Invoice.Totals.Bollo}}</td></tr>{{end}}
        <tr class="grand"><td>Totale</td><td class="num">{{formatEuro .Invoice.Totals.Totale}}</td></tr>
        {{if .Invoice.Payments}}
        <tr><td>Incassato</td><td class="num">{{formatEuro .Invoice.Paid}}</td></tr>
        <tr><td>Residuo</td><td class="num">{{formatEuro .Invoice.Residuo}}</td></tr>
        {{end}}
      </table>
    </div>

    {{if .Invoice.Notes}}
    <div class="footer">{{.Invoice.Notes}}</div>
    {{end}}
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatEuro":    formatEuro,
		"formatDate":    formatDate,
		"formatDatePtr": formatDatePtr,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input Input) (string, error) {
	if strings.TrimSpace(input.Studio.Name) == "" {
		input.Studio.Name = "Fattura"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatEuro renders with the Italian decimal comma, symbol first.
func formatEuro(amount float64) string {
	return "€ " + strings.Replace(fmt.Sprintf("%.2f", amount), ".", ",", 1)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("02/01/2006")
}

func formatDatePtr(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return formatDate(*value)
}
