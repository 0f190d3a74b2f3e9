package util

import (
	"encoding/json"
	"regexp"
	"strings"

	"app/internal/apperr"
)

var (
	codeFenceRe     = regexp.MustCompile("```(?:json)?")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	newlineRe       = regexp.MustCompile(`\n\s*`)
	smartQuotes     = strings.NewReplacer(
		"“", `"`, // left double
		"”", `"`, // right double
		"„", `"`, // low double
		"‘", "'", // left single
		"’", "'", // right single
	)
)

// ExtractJSONObject pulls a JSON object out of noisy generative-model
// text. It strips Markdown code fences, slices from the first '{' to the
// last '}' (a heuristic; nested braces are assumed well-formed), then
// applies light repairs: smart quotes to straight quotes, trailing
// commas removed, newlines collapsed. The returned bytes are guaranteed
// to parse as a JSON object.
func ExtractJSONObject(raw string) (json.RawMessage, error) {
	text := codeFenceRe.ReplaceAllString(raw, "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &apperr.MalformedOutputError{
			Snippet: snippet(raw),
			Err:     errNoObject,
		}
	}
	text = text[start : end+1]

	text = smartQuotes.Replace(text)
	text = trailingCommaRe.ReplaceAllString(text, "$1")
	text = newlineRe.ReplaceAllString(text, " ")

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, &apperr.MalformedOutputError{
			Snippet: snippet(text),
			Err:     err,
		}
	}
	return json.RawMessage(text), nil
}

var errNoObject = jsonError("no JSON object found in response")

type jsonError string

func (e jsonError) Error() string { return string(e) }

func snippet(s string) string {
	const max = 200
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
