package explain

import (
	"strings"
	"text/template"

	"github.com/doeshing/xplain-go/internal/domain"
)

// SystemPrompt shapes every non-chat backend request.
const SystemPrompt = "You are xplain, an expert developer assistant. " +
	"You provide clear, structured, and accurate explanations. " +
	"Use markdown formatting in your responses."

// TLDRSystemPrompt replaces SystemPrompt when TL;DR mode is active.
const TLDRSystemPrompt = "You are xplain, an expert developer assistant. " +
	"Respond with ONLY a single short sentence (max 15 words). " +
	"No markdown, no bullet points, no extra explanation. Just one line."

// Kind selects the prompt template for a request.
type Kind string

const (
	KindCommand Kind = "command"
	KindError   Kind = "error"
	KindCode    Kind = "code"
	KindDiff    Kind = "diff"
	KindAuto    Kind = "auto"
	KindWtf     Kind = "wtf"
)

// maxWtfOutputChars bounds the captured error output embedded in the wtf
// diagnostic prompt.
const maxWtfOutputChars = 2000

type promptData struct {
	Input    string
	Context  string
	Filename string
	Ref      string
	ExitCode int
	Language string
}

var promptTemplates = map[Kind]*template.Template{
	KindCommand: template.Must(template.New("command").Parse(
		"Explain this shell command in detail, step by step.\n" +
			"Command: {{.Input}}\n\n" +
			"Please explain:\n" +
			"1. What this command does overall\n" +
			"2. Break down each part/flag/argument\n" +
			"3. Common use cases\n" +
			"4. Any warnings or cautions\n\n" +
			"Language: Respond in {{.Language}}")),

	KindError: template.Must(template.New("error").Parse(
		"Explain this error message and suggest how to fix it.\n" +
			"Error: {{.Input}}\n" +
			"{{if .Context}}\nContext:\n{{.Context}}\n{{end}}\n" +
			"Please provide:\n" +
			"1. What this error means\n" +
			"2. Common causes\n" +
			"3. Step-by-step solutions\n" +
			"4. How to prevent it in the future\n\n" +
			"Language: Respond in {{.Language}}")),

	KindCode: template.Must(template.New("code").Parse(
		"Explain this code{{if .Filename}} (from {{.Filename}}){{end}} in detail.\n\n" +
			"```\n{{.Input}}\n```\n\n" +
			"Please explain:\n" +
			"1. Overall purpose of this code\n" +
			"2. How it works step by step\n" +
			"3. Key concepts and patterns used\n" +
			"4. Potential improvements or issues\n\n" +
			"Language: Respond in {{.Language}}")),

	KindDiff: template.Must(template.New("diff").Parse(
		"Explain this git diff{{if .Ref}} (ref: {{.Ref}}){{end}} in detail.\n\n" +
			"```diff\n{{.Input}}\n```\n\n" +
			"Please explain:\n" +
			"1. Summary of all changes\n" +
			"2. What each changed file/section does\n" +
			"3. Potential impact or risks of these changes\n" +
			"4. Any suggestions for improvement\n\n" +
			"Language: Respond in {{.Language}}")),

	KindAuto: template.Must(template.New("auto").Parse(
		"Analyze and explain the following terminal/code output.\n" +
			"First determine what it is (error message, code, command output, log, etc.), then explain it.\n\n" +
			"```\n{{.Input}}\n```\n\n" +
			"Please provide:\n" +
			"1. What type of content this is\n" +
			"2. Detailed explanation\n" +
			"3. If it's an error: causes and solutions\n" +
			"4. If it's code: how it works and potential improvements\n" +
			"5. If it's output: what it means and any notable items\n\n" +
			"Language: Respond in {{.Language}}")),

	KindWtf: template.Must(template.New("wtf").Parse(
		"A developer ran this command and it failed. Explain what went wrong and how to fix it.\n\n" +
			"Command: {{.Input}}\n" +
			"Exit code: {{.ExitCode}}\n" +
			"Error output:\n{{.Context}}\n\n" +
			"Please provide:\n" +
			"1. What the command was trying to do\n" +
			"2. Why it failed\n" +
			"3. Step-by-step fix\n" +
			"4. The corrected command (if applicable)\n\n" +
			"Language: Respond in {{.Language}}")),
}

func renderPrompt(req Request) (string, error) {
	tmpl, ok := promptTemplates[req.Kind]
	if !ok {
		tmpl = promptTemplates[KindAuto]
	}

	data := promptData{
		Input:    req.Input,
		Context:  req.Context,
		Filename: req.Filename,
		Ref:      req.Ref,
		ExitCode: req.ExitCode,
		Language: domain.LanguageName(req.Language),
	}
	if req.Kind == KindWtf && len(data.Context) > maxWtfOutputChars {
		data.Context = data.Context[:maxWtfOutputChars]
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func chatSystemPrompt(language string) string {
	return "You are xplain, a helpful developer assistant. " +
		"Provide clear, structured, and accurate responses. " +
		"Use markdown formatting. " +
		"Respond in " + domain.LanguageName(language) + "."
}
