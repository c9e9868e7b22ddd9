package domain

import "strings"

// ContentType labels a block of piped text for the pipe handler.
type ContentType string

const (
	ContentError   ContentType = "error"
	ContentCode    ContentType = "code"
	ContentAuto    ContentType = "auto"
	ContentUnknown ContentType = "unknown"
)

// Label returns a human-readable name for the content type.
func (c ContentType) Label() string {
	switch c {
	case ContentError:
		return "Error/Traceback"
	case ContentCode:
		return "Code"
	case ContentAuto:
		return "General Output"
	default:
		return "Unknown"
	}
}

// errorPatterns are matched case-insensitively against each line.
var errorPatterns = []string{
	"Traceback (most recent call last)",
	"Error:",
	"Exception:",
	"error:",
	"FATAL",
	"FAIL",
	"panic:",
	"Segmentation fault",
	"ECONNREFUSED",
	"ENOENT",
	"EPERM",
	"errno",
	"SyntaxError",
	"TypeError",
	"ValueError",
	"KeyError",
	"IndexError",
	"AttributeError",
	"ImportError",
	"ModuleNotFoundError",
	"FileNotFoundError",
	"PermissionError",
	"RuntimeError",
	"NullPointerException",
	"ClassNotFoundException",
	"ArrayIndexOutOfBoundsException",
	"undefined is not a function",
	"Cannot read propert",
	"is not defined",
	"command not found",
	"No such file or directory",
	"Permission denied",
}

// codeIndicators are keyword fragments suggesting source code, matched exactly.
var codeIndicators = []string{
	"def ", "class ", "import ", "from ", // Python
	"function ", "const ", "let ", "var ", // JS
	"func ", "package ", // Go
	"public ", "private ", "static ", // Java/C#
	"#include", "int main", // C/C++
}

const (
	errorLineRatio = 0.05
	codeLineRatio  = 0.10
)

// DetectContentType guesses whether text is an error dump, source code, or
// general output. A line contributes at most once to each score, no matter
// how many patterns it matches. Pure function, deterministic.
func DetectContentType(text string) ContentType {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 1 && strings.TrimSpace(lines[0]) == "" {
		return ContentUnknown
	}

	errorScore := 0
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, pattern := range errorPatterns {
			if strings.Contains(lower, strings.ToLower(pattern)) {
				errorScore++
				break
			}
		}
	}
	if errorScore > 0 && float64(errorScore)/float64(len(lines)) > errorLineRatio {
		return ContentError
	}

	codeScore := 0
	for _, line := range lines {
		for _, indicator := range codeIndicators {
			if strings.Contains(line, indicator) {
				codeScore++
				break
			}
		}
	}
	if codeScore > 0 && float64(codeScore)/float64(len(lines)) > codeLineRatio {
		return ContentCode
	}

	return ContentAuto
}
