package response

import "time"

type AIModel struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	ModelType    string    `json:"model_type"`
	Description  string    `json:"description"`
	Accuracy     *float64  `json:"accuracy"`
	Size         string    `json:"size"`
	IsPretrained bool      `json:"is_pretrained"`
	CreatedAt    time.Time `json:"created_at"`
}

type AIModelTest struct {
	Model      string  `json:"model"`
	Status     string  `json:"status"`
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
}
