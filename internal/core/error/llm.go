package errx

import (
	"net/http"
)

// WrapModel wraps a failed generative model call. Callers that treat model
// failure as fatal (classification) surface this; callers with a degraded
// path (narration, weather-adjacent generation) absorb it.
func WrapModel(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ModelErrorMessage)
}

// WrapIntentParse wraps classifier output that survived the transport but
// could not be decoded as a structured intent. Kept distinct from WrapModel
// so callers can tell "service unreachable" from "service responded unparsably".
func WrapIntentParse(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusUnprocessableEntity, IntentParseErrorMessage)
}
