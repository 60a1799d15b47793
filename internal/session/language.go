package session

import "fmt"

// Language is a display preference. Nothing is translated.
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

const DefaultLanguage = "en"

var Languages = []Language{
	{Code: "en", Label: "English"},
	{Code: "hi", Label: "हिन्दी"},
	{Code: "ta", Label: "தமிழ்"},
	{Code: "te", Label: "తెలుగు"},
	{Code: "mr", Label: "मराठी"},
	{Code: "gu", Label: "ગુજરાતી"},
}

func validLanguage(code string) error {
	for _, l := range Languages {
		if l.Code == code {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported language %q", ErrValidation, code)
}
