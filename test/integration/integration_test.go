//go:build integration

// Package integration runs the API feature files against an in-process
// server backed by sqlite, miniredis and a fake e-mail provider.
package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/consultorio/dashboard-backend/test/integration/steps"
)

func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      envOr("GODOG_FORMAT", "pretty"),
		Paths:       strings.Split(envOr("GODOG_PATHS", "features"), ","),
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1, // scenarios share one database
		Strict:      true,
		TestingT:    t,
		Tags:        os.Getenv("GODOG_TAGS"),
	}

	suite := godog.TestSuite{
		Name:                 "consultorio-dashboard-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
