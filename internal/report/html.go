// Package report renders the human-browsable per-run overview.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/robinFdr/MailBackup/pkg/models"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Mail Backup - {{.Account}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
td.num { text-align: right; }
.snippet { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Mail Backup for {{.Account}} ({{.Now}})</h1>
<p>{{len .Mails}} mails saved</p>
<table>
<tr><th>Folder</th><th>Subject</th><th>From</th><th>To</th><th>Date</th><th>Attachments</th></tr>
{{range .Mails}}<tr>
<td>{{.Folder}}</td>
<td><a href="{{.FileLocation}}">{{.Subject}}</a>{{if .Snippet}}<div class="snippet">{{.Snippet}}</div>{{end}}</td>
<td>{{.From}}</td>
<td>{{.To}}</td>
<td>{{.Date}}</td>
<td class="num">{{.Attachments}}</td>
</tr>
{{end}}</table>
</body>
</html>
`

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// HTML writes an index.html into the run directory listing every saved mail.
type HTML struct{}

func (HTML) Render(dir, account string, runTime time.Time, records []*models.MessageRecord) error {
	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	data := struct {
		Account string
		Now     string
		Mails   []*models.MessageRecord
	}{
		Account: account,
		Now:     runTime.Format("02.01.2006"),
		Mails:   records,
	}

	if err := indexTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}
