// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"html/template"
)

var htmlTemplate = template.Must(template.New("").Parse(`
{{- range $table := . -}}
{{if .Title}}<h2>{{.Title}}</h2>
{{end -}}
{{if .NoRows -}}
<p>no valid results</p>
{{else -}}
<table class='archstat'>
{{range $ri, $row := .Rows -}}
{{if eq $ri 0 -}}
<tr>{{range $row}}<th>{{.}}{{end}}
{{else if index $table.Spans $ri -}}
<tr><td>{{index $row 0}}<td class='error' colspan='7'>{{index $row 1}}
{{else -}}
<tr>{{range $row}}<td>{{.}}{{end}}
{{end -}}
{{end -}}
</table>
{{end -}}
{{end -}}
`))

// FormatHTML appends an HTML formatting of the tables to buf.
func FormatHTML(buf *bytes.Buffer, tables []*Table) {
	err := htmlTemplate.Execute(buf, tables)
	if err != nil {
		// Only possible errors here are template not matching data structure.
		// Don't make caller check - it's our fault.
		panic(err)
	}
}
