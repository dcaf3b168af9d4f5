package nlu

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	errx "github.com/mangaluru-mitra/server/internal/core/error"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

// intentPayload is the two-field object the classify prompt mandates.
type intentPayload struct {
	Category string `json:"category"`
	Entity   string `json:"entity"`
}

// StripFences removes a markdown code-fence wrapping from model output.
// Gemini regularly wraps JSON answers in ```json fences even when asked not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
		return strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		return strings.TrimSpace(s)
	}
	return s
}

// ParseIntentResponse decodes raw classifier output into a ClassifiedIntent.
// Unparseable text is a distinct error kind, fatal to the turn; an unknown
// category value is NOT an error and normalises to CHITCHAT.
func ParseIntentResponse(content string) (*model.ClassifiedIntent, error) {
	text := StripFences(content)

	var p intentPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		logx.Error().Err(err).Str("component", "intent_parser").Msg("classifier output is not valid JSON")
		return nil, errx.WrapIntentParse(err)
	}
	if strings.TrimSpace(p.Category) == "" {
		return nil, errx.WrapIntentParse(errors.New("missing category field"))
	}

	intent := &model.ClassifiedIntent{
		Category: model.ParseCategory(p.Category),
		Entity:   strings.TrimSpace(p.Entity),
	}
	if string(intent.Category) != strings.ToUpper(strings.TrimSpace(p.Category)) {
		logx.Warn().
			Str("raw_category", p.Category).
			Msg("classifier returned off-taxonomy category, defaulting to CHITCHAT")
	}
	return intent, nil
}
