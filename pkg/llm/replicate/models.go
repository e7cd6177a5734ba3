package replicate

const (
	LTXVideoModel     = "lightricks/ltx-video"
	DefaultVideoModel = LTXVideoModel
)
