package domain

// Config mirrors ~/.xplain/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Language            string          `yaml:"language"`
	Model               string          `yaml:"model"`
	Verbose             bool            `yaml:"verbose"`
	History             HistorySettings `yaml:"history"`
}

// HistorySettings configures the local explanation log.
type HistorySettings struct {
	Backend    string `yaml:"backend"` // "json" or "sqlite"
	Dir        string `yaml:"dir"`
	MaxEntries int    `yaml:"max_entries"`
}

const (
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"

	// DefaultMaxHistoryEntries bounds the retained log; oldest entries are
	// evicted first once the count exceeds it.
	DefaultMaxHistoryEntries = 500
)

// DefaultLanguage is the output language used when nothing else is configured.
const DefaultLanguage = "en"

// LanguageNames maps supported two-letter output-language codes to their names.
var LanguageNames = map[string]string{
	"en": "English",
	"vi": "Tiếng Việt",
	"zh": "中文",
	"ja": "日本語",
	"ko": "한국어",
	"es": "Español",
	"fr": "Français",
	"de": "Deutsch",
	"pt": "Português",
	"ru": "Русский",
}

// LanguageCodes returns the supported codes in a stable order.
func LanguageCodes() []string {
	return []string{"en", "vi", "zh", "ja", "ko", "es", "fr", "de", "pt", "ru"}
}

// IsSupportedLanguage reports whether code is a valid output language.
func IsSupportedLanguage(code string) bool {
	_, ok := LanguageNames[code]
	return ok
}

// LanguageName resolves a code to its full name, defaulting to English.
func LanguageName(code string) string {
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	return "English"
}

// DefaultModel is used when neither config, flag, nor environment selects one.
const DefaultModel = "openai/gpt-4o-mini"

// ModelInfo is a catalog row for the models command.
type ModelInfo struct {
	ID          string
	Description string
}

// AvailableModels describes the models known to work on the GitHub Models API.
// Any model id from the marketplace is accepted; the list only drives the
// models command output.
var AvailableModels = []ModelInfo{
	{ID: "openai/gpt-4o-mini", Description: "Fast & affordable (default)"},
	{ID: "openai/gpt-4o", Description: "Most capable GPT-4o"},
	{ID: "openai/gpt-4.1", Description: "Latest GPT-4.1"},
	{ID: "openai/gpt-4.1-mini", Description: "GPT-4.1 mini - fast"},
	{ID: "openai/gpt-4.1-nano", Description: "GPT-4.1 nano - fastest"},
	{ID: "openai/o4-mini", Description: "Reasoning model (o4-mini)"},
	{ID: "meta/llama-4-scout-17b-16e-instruct", Description: "Llama 4 Scout 17B"},
	{ID: "meta/llama-4-maverick-17b-128e-instruct-fp8", Description: "Llama 4 Maverick 17B"},
	{ID: "mistralai/mistral-small-2503", Description: "Mistral Small"},
	{ID: "deepseek/DeepSeek-R1", Description: "DeepSeek R1 (reasoning)"},
	{ID: "cohere/cohere-command-a", Description: "Cohere Command A"},
}
