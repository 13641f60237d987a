package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/consultorio/dashboard-backend/test/integration/mock"
)

const resendEmailsPath = "/emails"

func (t *TestContext) todayIs(date string) error {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return err
	}
	// Noon keeps the civil date stable whatever zone the app reads it in.
	t.clock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *TestContext) daysPass(days int) error {
	t.clock.AddDays(days)
	mock.FastForwardRedis(time.Duration(days) * 24 * time.Hour)
	return nil
}

func (t *TestContext) aClientExistsWithName(name string) error {
	return t.createClient(map[string]any{"name": name})
}

func (t *TestContext) aClientExistsWithNameAndEmail(name, email string) error {
	return t.createClient(map[string]any{"name": name, "email": email})
}

func (t *TestContext) createClient(body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/clients", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to create client: status %d (body: %v)", t.response.status, t.response.body)
	}
	return nil
}

func (t *TestContext) theEmailProviderRespondsWithStatus(status int) error {
	response := map[string]any{"id": "provider-email-id"}
	switch {
	case status >= http.StatusInternalServerError:
		response = map[string]any{"statusCode": status, "name": "application_error", "message": "Internal server error"}
	case status >= http.StatusBadRequest:
		response = map[string]any{"statusCode": status, "name": "validation_error", "message": "The to address is invalid"}
	}
	t.provider.SetResponse(http.MethodPost, resendEmailsPath, status, response)
	return nil
}

func (t *TestContext) theEmailWorkerProcessesTheQueue() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *TestContext) theEmailProviderShouldHaveReceivedEmails(quantity int) error {
	count := t.provider.RequestCount(http.MethodPost, resendEmailsPath)
	if count != quantity {
		return fmt.Errorf("expected %d emails sent to the provider, got %d", quantity, count)
	}
	return nil
}

func (t *TestContext) theEmailProviderRequestFieldShouldContain(index int, field, expected string) error {
	body := t.provider.GetRequestBody(http.MethodPost, resendEmailsPath, index)
	if body == nil {
		return fmt.Errorf("no provider request at index %d", index)
	}
	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in provider request: %v", field, body)
	}
	if actual := fmt.Sprintf("%v", value); !strings.Contains(actual, expected) {
		return fmt.Errorf("provider request field '%s' expected to contain '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *TestContext) redisShouldContainKeysMatching(quantity int, pattern string) error {
	keys, err := t.redis.Keys(context.Background(), pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) != quantity {
		return fmt.Errorf("expected %d redis keys matching '%s', got %d: %v", quantity, pattern, len(keys), keys)
	}
	return nil
}

func (t *TestContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *TestContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *TestContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}
