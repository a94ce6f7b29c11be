package request

// GenerateCode is the body of the generate and validate routes.
// Blocks may be empty: an empty workspace produces the starter program.
type GenerateCode struct {
	Blocks       string  `json:"blocks"`
	Language     string  `json:"language"`
	TargetDevice *string `json:"target_device"`
}

// CheckCode validates source the client already has
type CheckCode struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}
