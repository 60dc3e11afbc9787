package e2e

import (
	"github.com/cucumber/godog"

	"signup/e2e/steps/common"
	"signup/e2e/steps/registration"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register registration form steps
	registration.RegisterSteps(ctx, tc)
}
