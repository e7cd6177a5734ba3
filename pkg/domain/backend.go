package domain

import "fmt"

const (
	FalBackend       = "fal"
	OpenAIBackend    = "openai"
	ReplicateBackend = "replicate"
)

// Backend describes a hosted video generation service and how to enable it.
type Backend struct {
	Name        string
	DisplayName string
	EnvVar      string
	SignupURL   string
	Modes       []Mode
}

var Backends = []Backend{
	{
		Name:        FalBackend,
		DisplayName: "fal.ai LongCat",
		EnvVar:      "FAL_KEY",
		SignupURL:   "https://fal.ai",
		Modes:       []Mode{ModeTextToVideo, ModeImageToVideo},
	},
	{
		Name:        OpenAIBackend,
		DisplayName: "OpenAI Video",
		EnvVar:      "OPENAI_API_KEY",
		SignupURL:   "https://platform.openai.com",
		Modes:       []Mode{ModeTextToVideo},
	},
	{
		Name:        ReplicateBackend,
		DisplayName: "Replicate",
		EnvVar:      "REPLICATE_API_TOKEN",
		SignupURL:   "https://replicate.com",
		Modes:       []Mode{ModeTextToVideo, ModeImageToVideo},
	},
}

func LookupBackend(name string) (Backend, bool) {
	for _, b := range Backends {
		if b.Name == name {
			return b, true
		}
	}
	return Backend{}, false
}

func (b Backend) Supports(mode Mode) bool {
	for _, m := range b.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Remediation tells the user how to enable a backend that has no credential.
func (b Backend) Remediation() string {
	return fmt.Sprintf("%s API key not found. Set the `%s` environment variable in your deployment environment. "+
		"You can obtain a key by signing up at %s.", b.DisplayName, b.EnvVar, b.SignupURL)
}
