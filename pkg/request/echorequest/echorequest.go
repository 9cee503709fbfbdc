// Package echorequest adapts Echo request contexts to the save-request
// filter, turning submitted form or JSON bodies into the stripped payload a
// save handler should persist.
package echorequest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-crudfields/pkg/request"
)

// Values extracts the submitted inputs from an Echo context. JSON bodies
// decode into their top-level keys; form bodies (urlencoded or multipart)
// keep single values as strings and repeated keys as []string.
func Values(c echo.Context) (map[string]any, error) {
	if c == nil || c.Request() == nil {
		return nil, fmt.Errorf("echorequest: request context is required")
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return jsonValues(c)
	}
	return formValues(c)
}

// Stripped returns the persisted subset of the submitted inputs according to
// the supplied filter.
func Stripped(c echo.Context, filter request.Filter) (map[string]any, error) {
	values, err := Values(c)
	if err != nil {
		return nil, err
	}
	return filter.Strip(values), nil
}

func jsonValues(c echo.Context) (map[string]any, error) {
	body := c.Request().Body
	if body == nil {
		return nil, nil
	}
	defer body.Close()

	values := make(map[string]any)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(&values); err != nil {
		return nil, fmt.Errorf("echorequest: decode json body: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func formValues(c echo.Context) (map[string]any, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("echorequest: parse form: %w", err)
	}
	if len(params) == 0 {
		return nil, nil
	}

	values := make(map[string]any, len(params))
	for key, entries := range params {
		switch len(entries) {
		case 0:
			values[key] = ""
		case 1:
			values[key] = entries[0]
		default:
			values[key] = append([]string(nil), entries...)
		}
	}
	return values, nil
}
