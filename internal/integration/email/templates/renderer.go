// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data interface{}) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		slog.Debug("No text template, sending HTML only", "template", templateName, "error", err)
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// PaymentReminderData contains data for the payment reminder and overdue
// notice templates, formatted for display.
type PaymentReminderData struct {
	ClientName   string
	Amount       string
	DueDate      string
	Installment  string
	Urgency      string
	PracticeName string
}

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// NewPaymentReminderData formats reminder content the Brazilian way:
// "R$ 1.250,00" and "12/06/2024".
func NewPaymentReminderData(c entity.ReminderContent) PaymentReminderData {
	amount, _ := c.Amount.Round(2).Float64()
	return PaymentReminderData{
		ClientName:   c.ClientName,
		Amount:       brPrinter.Sprintf("R$ %.2f", amount),
		DueDate:      c.DueDate.Format("02/01/2006"),
		Installment:  c.Installment(),
		Urgency:      c.UrgencyText,
		PracticeName: c.PracticeName,
	}
}
