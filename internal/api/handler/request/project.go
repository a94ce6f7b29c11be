package request

type CreateProject struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Blocks      string   `json:"blocks"`
	Language    string   `json:"language" validate:"omitempty,oneof=python cpp javascript"`
	Tags        []string `json:"tags" validate:"omitempty,dive,max=50"`
}

// UpdateProject only changes the fields present in the body
type UpdateProject struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string   `json:"description"`
	Blocks      *string   `json:"blocks"`
	Language    *string   `json:"language" validate:"omitempty,oneof=python cpp javascript"`
	Thumbnail   *string   `json:"thumbnail" validate:"omitempty,max=500"`
	Tags        *[]string `json:"tags"`
	IsPublic    *bool     `json:"is_public"`
}

// GenerateProject overrides the stored language and device for one generation
type GenerateProject struct {
	Language     string  `json:"language" validate:"omitempty,oneof=python cpp javascript"`
	TargetDevice *string `json:"target_device"`
}
