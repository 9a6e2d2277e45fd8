// Package render turns a resume and profile into portable documents.
// Every renderer is a pure function: the same inputs always produce the
// same bytes.
package render

import (
	"html/template"
	"strings"

	"github.com/resumebuilder/server/internal/model"
)

type page struct {
	Resume  model.Resume
	Profile model.ProfileView
	Skills  []string
}

// HTML produces a complete, self-contained markup document. Sections whose
// source list is empty are omitted entirely, not rendered empty.
func HTML(r model.Resume, p model.ProfileView) (string, error) {
	var b strings.Builder
	if err := htmlTmpl.Execute(&b, page{Resume: r, Profile: p, Skills: r.SkillList()}); err != nil {
		return "", err
	}
	return b.String(), nil
}

var htmlTmpl = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{if .Profile.Name}}{{.Profile.Name}}{{else}}Resume{{end}} - Resume</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-100 text-black font-sans">
<div class="max-w-4xl mx-auto p-8 bg-white shadow-lg mt-10 mb-10">
    <div class="border-b pb-4 mb-6">
        <div class="flex justify-between items-start">
            <div>
                <h1 class="text-4xl font-bold">{{if .Profile.Name}}{{.Profile.Name}}{{else}}Your Name{{end}}</h1>
                <p class="text-lg text-gray-600">{{.Profile.Email}}{{if and .Profile.Email .Profile.Phone}} | {{end}}{{.Profile.Phone}}</p>
            </div>
{{- if or .Profile.City .Profile.State}}
            <p class="text-lg text-gray-600 text-right mt-6">{{.Profile.City}}{{if and .Profile.City .Profile.State}}, {{end}}{{.Profile.State}}</p>
{{- end}}
        </div>
    </div>
{{- if .Skills}}
    <section class="mb-8">
        <h2 class="text-2xl font-semibold border-b pb-2 mb-4">Skills</h2>
        <ul class="list-disc pl-5 space-y-1">
{{- range .Skills}}
            <li>{{.}}</li>
{{- end}}
        </ul>
    </section>
{{- end}}
{{- if .Resume.Experiences}}
    <section class="mb-8">
        <h2 class="text-2xl font-semibold border-b pb-2 mb-4">Work Experience</h2>
{{- range .Resume.Experiences}}
        <div class="mb-6">
            <p class="text-lg font-bold">{{.Role}}{{if .Company}} | {{.Company}}{{end}}{{if .Location}} &bull; {{.Location}}{{end}}</p>
{{- if or .StartDate .EndDate}}
            <p class="text-sm text-gray-600">{{.StartDate}}{{if and .StartDate .EndDate}} - {{end}}{{.EndDate}}</p>
{{- end}}
{{- if .Description}}
            <p class="text-sm text-gray-700 mt-2">{{.Description}}</p>
{{- end}}
{{- if .Achievements}}
            <ul class="list-disc pl-5 mt-2 text-sm text-gray-700">
{{- range .Achievements}}
                <li>{{.}}</li>
{{- end}}
            </ul>
{{- end}}
        </div>
{{- end}}
    </section>
{{- end}}
{{- if .Resume.Education}}
    <section class="mb-8">
        <h2 class="text-2xl font-semibold border-b pb-2 mb-4">Education</h2>
{{- range .Resume.Education}}
        <div class="mb-6">
            <p class="text-lg font-bold">{{.Degree}}{{if .Field}} in {{.Field}}{{end}}</p>
            <p class="text-sm text-gray-600">{{.SchoolName}}{{if or .StartDate .EndDate}} &bull; {{.StartDate}}{{if and .StartDate .EndDate}} - {{end}}{{.EndDate}}{{end}}</p>
{{- if .GPA}}
            <p class="text-sm text-gray-600">GPA: {{.GPA}}</p>
{{- end}}
{{- if .Achievements}}
            <p class="text-sm text-gray-600">{{range $i, $a := .Achievements}}{{if $i}}, {{end}}{{$a}}{{end}}</p>
{{- end}}
        </div>
{{- end}}
    </section>
{{- end}}
{{- if .Resume.Projects}}
    <section class="mb-8">
        <h2 class="text-2xl font-semibold border-b pb-2 mb-4">Projects</h2>
        <ul class="list-disc pl-5 space-y-2 text-sm text-gray-700">
{{- range .Resume.Projects}}
            <li>
                <div><strong>{{if .Title}}{{.Title}}{{else}}Untitled{{end}}</strong></div>
{{- if .Description}}
                <div class="text-sm text-gray-700 mt-1">{{.Description}}</div>
{{- end}}
{{- if .Technologies}}
                <div class="text-sm text-gray-600">{{.Technologies}}</div>
{{- end}}
{{- if .Highlights}}
                <ul class="list-disc pl-5 mt-1 text-sm text-gray-700">
{{- range .Highlights}}
                    <li>{{.}}</li>
{{- end}}
                </ul>
{{- end}}
            </li>
{{- end}}
        </ul>
    </section>
{{- end}}
</div>
</body>
</html>
`))
