package registration

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	PUT(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	DELETE(path string) error
	GetResponseField(field string) (interface{}, error)
	GetFormID() string
	SetFormID(id string)
	GetToken() string
	SetToken(token string)
}

// RegisterSteps registers registration form step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrationSteps{tc: tc}

	ctx.Step(`^I start a new registration form$`, steps.startForm)
	ctx.Step(`^I set "([^"]*)" to "([^"]*)"$`, steps.setField)
	ctx.Step(`^I leave the "([^"]*)" field$`, steps.blurField)
	ctx.Step(`^I fill in a valid registration for "([^"]*)"$`, steps.fillValid)
	ctx.Step(`^I submit the form$`, steps.submit)
	ctx.Step(`^I dismiss the notification$`, steps.dismiss)
	ctx.Step(`^I view the form$`, steps.view)
	ctx.Step(`^I view another form with my token$`, steps.viewForeignForm)
}

type registrationSteps struct {
	tc TestContext
}

func (s *registrationSteps) base() string {
	return "/api/forms/" + s.tc.GetFormID()
}

func (s *registrationSteps) startForm(ctx context.Context) error {
	s.tc.SetToken("")
	if err := s.tc.POST("/api/forms", nil); err != nil {
		return err
	}
	formID, err := s.tc.GetResponseField("form_id")
	if err != nil {
		return err
	}
	token, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	s.tc.SetFormID(fmt.Sprint(formID))
	s.tc.SetToken(fmt.Sprint(token))
	return nil
}

func (s *registrationSteps) setField(ctx context.Context, field, value string) error {
	return s.tc.PUT(s.base()+"/fields/"+field, map[string]string{"value": value})
}

func (s *registrationSteps) blurField(ctx context.Context, field string) error {
	return s.tc.POST(s.base()+"/fields/"+field+"/blur", nil)
}

func (s *registrationSteps) fillValid(ctx context.Context, username string) error {
	values := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "Passw0rd",
	}
	for _, field := range []string{"username", "email", "password"} {
		if err := s.setField(ctx, field, values[field]); err != nil {
			return err
		}
	}
	return nil
}

func (s *registrationSteps) submit(ctx context.Context) error {
	return s.tc.POST(s.base()+"/submit", nil)
}

func (s *registrationSteps) dismiss(ctx context.Context) error {
	return s.tc.DELETE(s.base() + "/notification")
}

func (s *registrationSteps) view(ctx context.Context) error {
	return s.tc.GET(s.base(), map[string]string{"Authorization": "Bearer " + s.tc.GetToken()})
}

func (s *registrationSteps) viewForeignForm(ctx context.Context) error {
	return s.tc.GET("/api/forms/00000000-0000-4000-8000-000000000001", map[string]string{"Authorization": "Bearer " + s.tc.GetToken()})
}
