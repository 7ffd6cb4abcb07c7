package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Template is a prompt with {{variable}} placeholders.
type Template struct {
	Name      string
	Text      string
	Variables []string
}

func NewTemplate(name, text string) Template {
	return Template{Name: name, Text: text, Variables: ExtractVariables(text)}
}

// Render replaces every placeholder. All variables must be supplied.
func (t Template) Render(vars map[string]string) (string, error) {
	var missing []string
	for _, v := range t.Variables {
		if _, ok := vars[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("template %s: missing variables: %s", t.Name, strings.Join(missing, ", "))
	}

	return variablePattern.ReplaceAllStringFunc(t.Text, func(match string) string {
		return vars[match[2:len(match)-2]] // strip {{ and }}
	}), nil
}

// ExtractVariables returns the distinct variable names in order of first use.
func ExtractVariables(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var vars []string
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			vars = append(vars, m[1])
			seen[m[1]] = true
		}
	}
	return vars
}
