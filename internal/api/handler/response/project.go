package response

import "time"

type Project struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Blocks        string    `json:"blocks"`
	GeneratedCode string    `json:"generated_code"`
	Language      string    `json:"language"`
	Thumbnail     string    `json:"thumbnail"`
	Tags          []string  `json:"tags"`
	IsPublic      bool      `json:"is_public"`
	OwnerID       uint      `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
