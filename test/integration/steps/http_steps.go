package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

func (t *TestContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *TestContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders substitutes {{name}} with values saved earlier in the
// scenario.
func (t *TestContext) replacePlaceholders(content string) string {
	for name, value := range t.saved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *TestContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody any
	if len(bodyBytes) == 0 || json.Unmarshal(bodyBytes, &responseBody) != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *TestContext) iSaveTheResponseFieldAs(field, name string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

func (t *TestContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *TestContext) theResponseFieldShouldNotExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if value := getFieldValue(body, field); value != nil {
		return fmt.Errorf("field '%s' expected to be absent, got %v", field, value)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, value)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, quantity, len(items), items)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldEqualTheSaved(field, name string) error {
	saved, ok := t.saved[name]
	if !ok {
		return fmt.Errorf("nothing saved as '%s'", name)
	}
	return t.theResponseFieldShouldBe(field, saved)
}

func (t *TestContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *TestContext) responseField(field string) (any, error) {
	body, err := t.responseObject()
	if err != nil {
		return nil, err
	}
	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i < 0 || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
