package response

type GeneratedCode struct {
	Code     string   `json:"code"`
	Language string   `json:"language"`
	Warnings []string `json:"warnings"`
}

type CodeValidation struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

type CodeTemplate struct {
	Template string `json:"template"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

type CodeTemplateSummary struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
}
