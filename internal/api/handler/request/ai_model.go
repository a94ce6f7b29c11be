package request

type CreateAIModel struct {
	Name        string `json:"name" validate:"required,max=255"`
	ModelType   string `json:"model_type" validate:"required,max=50"`
	Description string `json:"description"`
}
