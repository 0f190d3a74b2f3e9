package repository

import (
	"regexp"
	"strings"
	"testing"
)

func TestTopicPattern(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Python", `\mPython\M`},
		{"machine learning", `\mmachine learning\M`},
		{"what.ever", `\mwhat\.ever\M`},
		// Boundary anchors are omitted next to non-word characters,
		// otherwise "C++" could never match.
		{"C++", `\mC\+\+`},
		{"C#", `\mC#`},
		{".NET", `\.NET\M`},
	}
	for _, tt := range tests {
		if got := topicPattern(tt.topic); got != tt.want {
			t.Errorf("topicPattern(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

// compileTopicPattern approximates the Postgres regex engine: \m and \M
// word boundaries become Go's \b for match checks.
func compileTopicPattern(t *testing.T, topic string) *regexp.Regexp {
	t.Helper()
	pattern := strings.NewReplacer(`\m`, `\b`, `\M`, `\b`).Replace(topicPattern(topic))
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("topicPattern(%q) produced invalid regex: %v", topic, err)
	}
	return re
}

func TestTopicPatternMatching(t *testing.T) {
	tests := []struct {
		topic string
		text  string
		match bool
	}{
		{"Python", "Learn Python fast", true},
		{"Python", "python for beginners", true},
		{"Python", "Pythonic idioms", false},
		{"Python", "CPython internals", false},
		{"C++", "Modern C++ course", true},
		{"C++", "Objective-C primer", false},
		{"C#", "C# for .NET developers", true},
		{"machine learning", "Intro to Machine Learning", true},
		{"machine learning", "machine learnings", false},
	}
	for _, tt := range tests {
		re := compileTopicPattern(t, tt.topic)
		if got := re.MatchString(tt.text); got != tt.match {
			t.Errorf("pattern for %q against %q = %v, want %v", tt.topic, tt.text, got, tt.match)
		}
	}
}
