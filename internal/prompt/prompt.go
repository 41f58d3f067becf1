// Package prompt renders the two prompt templates sent to the model. Both
// builders are pure: identical inputs produce byte-identical prompts, and
// empty optional inputs omit their section entirely.
package prompt

import (
	"strings"
	"text/template"

	"github.com/doeshing/clicra-go/internal/domain"
)

var generationTmpl = template.Must(template.New("generation").Parse(
	`{{.Preamble}}Please provide a {{if .Script}}script{{else}}command line{{end}} to accomplish the following task.{{if .Task}}
## TASK
{{.Task}}
{{end}}{{if .Context}}
## CONTEXT
{{.Context}}
{{end}}`))

var analysisTmpl = template.Must(template.New("analysis").Parse(
	`Analyze the result of the command.
{{if .Task}}
## TASK
{{.Task}}
{{end}}{{if .Context}}
## CONTEXT
{{.Context}}
{{end}}
## COMMAND
` + "```" + `
{{.Command}}
` + "```" + `
{{if .Stdout}}
## STDOUT
{{.Stdout}}
{{end}}{{if .Stderr}}
## STDERR
{{.Stderr}}
{{end}}`))

type generationData struct {
	Preamble string
	Script   bool
	Task     string
	Context  string
}

type analysisData struct {
	Task    string
	Context string
	Command string
	Stdout  string
	Stderr  string
}

// Generation builds the command/script generation prompt. The strategy
// preamble, task section, and context section appear only when present;
// section order never varies.
func Generation(task, context string, script bool, strategy *domain.Strategy) string {
	data := generationData{Script: script, Task: task, Context: context}
	if strategy != nil {
		data.Preamble = strategy.Preamble
	}
	return render(generationTmpl, data)
}

// Analysis builds the failure analysis prompt. The command section is always
// present and fenced; stdout and stderr sections appear only when non-empty.
func Analysis(command, task, context, stdout, stderr string) string {
	return render(analysisTmpl, analysisData{
		Task:    task,
		Context: context,
		Command: command,
		Stdout:  strings.TrimRight(stdout, "\n"),
		Stderr:  strings.TrimRight(stderr, "\n"),
	})
}

func render(t *template.Template, data interface{}) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// Static templates over plain string fields cannot fail to execute.
		panic(err)
	}
	return b.String()
}
