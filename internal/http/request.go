package router

import (
	"encoding/json"
	"fmt"
	"html"
	"mime"
	"net/http"
	"strconv"
)

// MissingParamError is returned when a required request parameter is absent.
type MissingParamError struct {
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required parameter %s", e.Param)
}

// Params is the normalized inbound parameter set: query and form parameters
// merged with the JSON request body, body keys taking precedence. Values are
// HTML-escaped when read, never when stored.
type Params struct {
	values map[string]string
}

// NewParams builds Params from the request. Malformed JSON bodies are
// ignored, matching the lenient behavior of the storefront widget endpoint.
func NewParams(r *http.Request) *Params {
	values := map[string]string{}

	for name, list := range r.URL.Query() {
		if len(list) > 0 {
			values[name] = list[0]
		}
	}

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "application/json" {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			for name, value := range body {
				if s, ok := scalarToString(value); ok {
					values[name] = s
				}
			}
		}
	} else {
		if err := r.ParseForm(); err == nil {
			for name, list := range r.PostForm {
				if len(list) > 0 {
					values[name] = list[0]
				}
			}
		}
	}

	return &Params{values: values}
}

// Get returns the escaped parameter value, or def when absent.
func (p *Params) Get(name, def string) string {
	value, ok := p.values[name]
	if !ok {
		return def
	}

	return html.EscapeString(value)
}

// GetRequired returns the escaped parameter value, or a MissingParamError.
func (p *Params) GetRequired(name string) (string, error) {
	value, ok := p.values[name]
	if !ok {
		return "", &MissingParamError{Param: name}
	}

	return html.EscapeString(value), nil
}

func scalarToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
