package response

type APIError struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Status is the body of action routes that report an outcome rather than a resource
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
