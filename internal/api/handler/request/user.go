package request

type UpdateUser struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
	Avatar *string `json:"avatar" validate:"omitempty,url,max=500"`
}
