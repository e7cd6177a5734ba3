package domain

const (
	SetModeCallbackPrefix     = "set_mode_"
	SetBackendCallbackPrefix  = "set_backend_"
	SetDurationCallbackPrefix = "set_duration_"
	SetGuidanceCallbackPrefix = "set_guidance_"
	SetStepsCallbackPrefix    = "set_steps_"
	GenVideoCallbackPrefix    = "gen_video_"
)
