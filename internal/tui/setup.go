package tui

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkravets/dicthub/internal/config"
	"github.com/mkravets/dicthub/internal/tui/components"
)

// Field labels of the setup form, also the keys of Form.Values().
const (
	fieldGlossary   = "Glossary name"
	fieldActor      = "Actor URN"
	fieldEnviron    = "Environment"
	fieldEndpoint   = "Server endpoint"
	fieldJiraPrefix = "Jira URL prefix"
)

// SetupResult is what the interactive setup flow produced.
type SetupResult struct {
	Cancelled bool
	Config    *config.ProjectConfig
}

// NewSetupForm builds the dicthub.yaml setup form, pre-filled from defaults.
// Datastore mappings are not part of the form; they keep their defaults and
// are edited in the generated file.
func NewSetupForm(defaults *config.ProjectConfig) components.Form {
	return components.NewForm("dicthub project setup",
		components.NewTextField(fieldGlossary, "e.g. MyPlatformGlossary").
			WithValue(defaults.Glossary).
			WithRequired(true),
		components.NewTextField(fieldActor, "urn:li:corpuser:...").
			WithValue(defaults.Actor).
			WithRequired(true).
			WithValidator(validateActorURN),
		components.NewTextField(fieldEnviron, "PROD").
			WithValue(defaults.Environment).
			WithRequired(true),
		components.NewTextField(fieldEndpoint, "http://localhost:8080").
			WithValue(defaults.Server.Endpoint).
			WithRequired(true).
			WithValidator(validateEndpoint),
		components.NewTextField(fieldJiraPrefix, "https://jira.example.com/browse/").
			WithValue(defaults.JiraURLPrefix),
	)
}

// RunSetup runs the setup form to completion and maps the entered values
// onto a fresh ProjectConfig.
func RunSetup(defaults *config.ProjectConfig) (SetupResult, error) {
	model, err := tea.NewProgram(NewSetupForm(defaults)).Run()
	if err != nil {
		return SetupResult{}, fmt.Errorf("setup flow failed: %w", err)
	}

	form, ok := model.(components.Form)
	if !ok || !form.Submitted() {
		return SetupResult{Cancelled: true}, nil
	}

	return SetupResult{Config: ConfigFromValues(form.Values(), defaults)}, nil
}

// ConfigFromValues maps submitted form values onto a ProjectConfig, keeping
// the default datastore mappings.
func ConfigFromValues(values map[string]string, defaults *config.ProjectConfig) *config.ProjectConfig {
	cfg := *defaults
	cfg.Glossary = strings.TrimSpace(values[fieldGlossary])
	cfg.Actor = strings.TrimSpace(values[fieldActor])
	cfg.Environment = strings.TrimSpace(values[fieldEnviron])
	cfg.Server.Endpoint = strings.TrimSpace(values[fieldEndpoint])
	cfg.JiraURLPrefix = strings.TrimSpace(values[fieldJiraPrefix])
	return &cfg
}

func validateActorURN(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "urn:li:corpuser:") {
		return fmt.Errorf("actor must be an urn:li:corpuser: URN")
	}
	return nil
}

func validateEndpoint(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http(s) URL")
	}
	return nil
}
