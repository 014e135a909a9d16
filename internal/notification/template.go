package notification

import (
	"bytes"
	"html/template"
	"strings"

	"agencyops/internal/domain"
)

var ticketTmpl = template.Must(template.New("ticket").Parse(`<div style="font-family:Arial,sans-serif;font-size:14px;color:#0f172a">
<h2 style="margin:0 0 8px">Ticket #{{.Number}}: {{.Title}}</h2>
{{if .ClientName}}<p style="margin:0 0 12px;color:#475569">{{.ClientName}}</p>{{end}}
<table cellpadding="4" style="border-collapse:collapse">
<tr><td><strong>Status</strong></td><td>{{.Status}}</td></tr>
<tr><td><strong>Priority</strong></td><td>{{.Priority}}</td></tr>
{{if .ServiceArea}}<tr><td><strong>Service</strong></td><td>{{.ServiceArea}}</td></tr>{{end}}
{{if .Environment}}<tr><td><strong>Environment</strong></td><td>{{.Environment}}</td></tr>{{end}}
</table>
{{if .Lines}}<div style="margin-top:16px;padding:12px;background:#f1f5f9;border-radius:6px">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>{{end}}
</div>`))

var projectTmpl = template.Must(template.New("project").Parse(`<div style="font-family:Arial,sans-serif;font-size:14px;color:#0f172a">
<h2 style="margin:0 0 8px">{{.Name}}</h2>
{{if .ClientName}}<p style="margin:0 0 12px;color:#475569">{{.ClientName}}</p>{{end}}
<p><strong>Status:</strong> {{.Status}}</p>
{{if .Title}}<h3 style="margin:16px 0 4px">{{.Title}}</h3>{{end}}
{{if .Lines}}<div style="padding:12px;background:#f1f5f9;border-radius:6px">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>{{end}}
</div>`))

type ticketView struct {
	Number      int64
	Title       string
	ClientName  string
	Status      string
	Priority    string
	ServiceArea string
	Environment string
	Lines       []string
}

type projectView struct {
	Name       string
	ClientName string
	Status     string
	Title      string
	Lines      []string
}

func renderTicket(t *domain.Ticket, u *domain.TicketUpdate) (string, error) {
	v := ticketView{
		Number:      t.TicketNumber,
		Title:       t.Title,
		Status:      domain.TicketStatusLabels.Label(t.Status),
		Priority:    domain.TicketPriorityLabels.Label(t.Priority),
		ServiceArea: t.ServiceArea,
		Environment: t.Environment,
	}
	if t.Client != nil {
		v.ClientName = t.Client.Name
	}
	if u != nil {
		v.Lines = messageLines(u.Message)
	}

	var buf bytes.Buffer
	if err := ticketTmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderProject(p *domain.Project, u *domain.ProjectUpdate) (string, error) {
	v := projectView{
		Name:   p.Name,
		Status: domain.ProjectStatusLabels.Label(p.Status),
	}
	if p.Client != nil {
		v.ClientName = p.Client.Name
	}
	if u != nil {
		v.Title = u.Title
		v.Lines = messageLines(u.Message)
	}

	var buf bytes.Buffer
	if err := projectTmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func messageLines(msg string) []string {
	msg = strings.TrimSpace(strings.ReplaceAll(msg, "\r\n", "\n"))
	if msg == "" {
		return nil
	}
	return strings.Split(msg, "\n")
}
