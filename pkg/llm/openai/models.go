package openai

const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultVideoModel = "sora-2"
)

type videoGenerationRequest struct {
	Model      string `json:"model"`
	Prompt     string `json:"prompt"`
	Duration   int    `json:"duration"`
	Resolution string `json:"resolution"`
}

type videoGenerationResponse struct {
	Data []videoGenerationResult `json:"data"`
}

type videoGenerationResult struct {
	URL string `json:"url"`
}
