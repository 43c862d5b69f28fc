// Package report renders the person table as an HTML page.
package report

import (
	"html/template"
	"io"

	"github.com/fulldump/peopledb/store"
)

const Title = "Person Status Report"

var page = template.Must(template.New("report").Parse(`<html>
	<head><title>{{.Title}}</title></head>

	<body bgcolor="#000000" text="#00FF00">
		<center>

		<p><h3>{{.Title}}</h3></p>

		<table border=2pt cell-padding=2pt cell-spacing=2pt>
			<tr>
				<th>ID</th>
				<th>NAME</th>
				<th>STATUS</th>
			</tr>
{{- range .Records}}

			<tr>
				<td>{{.ID}}</td>
				<td>{{.Name}}</td>
				<td>{{.Status}}</td>
			</tr>
{{- end}}
		</table>
	</body>
</html>
`))

// WriteHTML writes one table row per slot yielded by rows.
func WriteHTML(w io.Writer, rows *store.Rows) error {
	records := []store.Record{}
	for rows.Next() {
		records = append(records, rows.Read())
	}

	return page.Execute(w, struct {
		Title   string
		Records []store.Record
	}{
		Title:   Title,
		Records: records,
	})
}
