package errors

import (
	"strings"
	"text/template"
)

// Locale of every user message.
const Locale = "en-US"

var userMessages = map[Code]*template.Template{}

func init() {
	for code, text := range map[Code]string{
		CodeDiceInvalidSyntax:  `Could not parse "{{.Input}}": {{.Reason}}`,
		CodeDiceDivisionByZero: "{{.Label}} divides by zero",
		CodeDiceOverflow:       "{{.Label}} is too large to total",
		CodeDiceTooMany:        "Too many dice; the limit is {{.Limit}}",
		CodeClockInvalid:       "That clock is not valid: {{.Reason}}",
		CodeClockAlreadyExists: `A clock named "{{.Name}}" already exists`,
		CodeNotFound:           `Could not find a clock named "{{.Name}}"`,
		CodeFilterInvalid:      "Could not understand the filter: {{.Reason}}",
		CodeSeedOutOfRange:     "Seed must fit in a signed 64-bit integer",
	} {
		userMessages[code] = template.Must(template.New(string(code)).Option("missingkey=zero").Parse(text))
	}
}

// UserMessage renders the message for code. Unknown codes render as the
// code itself.
func UserMessage(code Code, metadata map[string]string) string {
	tmpl, ok := userMessages[code]
	if !ok {
		return string(code)
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return string(code)
	}
	return b.String()
}
