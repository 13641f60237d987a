// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/consultorio/dashboard-backend/config"
	"github.com/consultorio/dashboard-backend/internal/infra/cache"
	"github.com/consultorio/dashboard-backend/internal/infra/dependency"
	"github.com/consultorio/dashboard-backend/internal/integration/persistence/model"
	"github.com/consultorio/dashboard-backend/test/integration/mock"
)

const (
	testResendAPIKey = "re_test_key"
	defaultToday     = "2024-06-10"
)

// suite holds the resources shared by every scenario. The database, Redis
// and the provider mock are cleared between scenarios.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	redis    *redis.Client
	clock    *mock.Time
	provider *mock.ApiMock
}

var shared *suite

// TestContext holds the state of one scenario.
type TestContext struct {
	*suite

	client   *http.Client
	headers  map[string]string
	response *response
	saved    map[string]string
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		s, err := newSuite()
		if err != nil {
			panic(fmt.Sprintf("failed to start test suite: %s", err.Error()))
		}
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.provider.Close()
	})
}

func newSuite() (*suite, error) {
	provider := mock.NewApiServer()
	provider.Start()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.WriteRateLimit = 0
	cfg.Redis.Enabled = true
	cfg.Email.ResendAPIKey = testResendAPIKey
	cfg.Email.ResendBaseURL = provider.GetUrl()
	cfg.Email.PracticeName = "Consultório Teste"
	cfg.Reminder.LeadDays = 1

	db := mock.NewDb(model.All()...)
	redisClient := mock.NewRedis()
	clk := mock.NewTime()

	injector, err := dependency.NewInjector(dependency.Options{
		Config: cfg,
		DB:     db.DbConn,
		Redis:  redisClient,
		Clock:  clk,
		DBHealthChecker: func() bool {
			sqlDB, err := db.DbConn.DB()
			return err == nil && sqlDB.Ping() == nil
		},
		RedisHealthChecker: cache.HealthChecker(redisClient),
	})
	if err != nil {
		return nil, err
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	return &suite{
		server:   httptest.NewServer(engine),
		injector: injector,
		db:       db,
		redis:    redisClient,
		clock:    clk,
		provider: provider,
	}, nil
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &TestContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, tc.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, tc.todayIs)
	ctx.Step(`^(\d+) days? pass(?:es)?$`, tc.daysPass)

	// Setup steps
	ctx.Given(`^a client exists with name "([^"]*)"$`, tc.aClientExistsWithName)
	ctx.Given(`^a client exists with name "([^"]*)" and email "([^"]*)"$`, tc.aClientExistsWithNameAndEmail)
	ctx.Given(`^the email provider responds with status (\d+)$`, tc.theEmailProviderRespondsWithStatus)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, tc.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, tc.iSaveTheResponseFieldAs)
	ctx.When(`^the email worker processes the queue$`, tc.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, tc.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, tc.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, tc.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, tc.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response field "([^"]*)" should equal the saved "([^"]*)"$`, tc.theResponseFieldShouldEqualTheSaved)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, tc.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, tc.theDbShouldContainObjectsInWithTheValues)

	// Integration assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, tc.theEmailProviderShouldHaveReceivedEmails)
	ctx.Then(`^the email provider request (\d+) field "([^"]*)" should contain "([^"]*)"$`, tc.theEmailProviderRequestFieldShouldContain)
	ctx.Then(`^redis should contain (\d+) keys? matching "([^"]*)"$`, tc.redisShouldContainKeysMatching)
}

func (t *TestContext) before() error {
	if shared == nil {
		return fmt.Errorf("test suite was not initialized")
	}
	t.suite = shared
	t.headers = make(map[string]string)
	t.response = nil
	t.saved = make(map[string]string)

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	t.provider.Reset()
	t.injector.RateLimiter.Reset()

	return t.todayIs(defaultToday)
}

func (t *TestContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}
