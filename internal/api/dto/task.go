package dto

type CreateTaskRequest struct {
	ProjectID      string   `json:"project_id" validate:"required,uuid"`
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"max=5000"`
	Status         string   `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority       string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate        string   `json:"due_date"`
	Tags           []string `json:"tags"`
	AssignedUserID string   `json:"assigned_user_id" validate:"omitempty,uuid"`
}

// UpdateTaskRequest is a partial update; nil fields stay unchanged.
// id, created_at and updated_at are not part of the shape, so attempts
// to patch them are rejected by the strict decoder at the boundary.
// An empty due_date or assigned_user_id clears the field.
type UpdateTaskRequest struct {
	Title          *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string   `json:"description" validate:"omitempty,max=5000"`
	Status         *string   `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority       *string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate        *string   `json:"due_date"`
	Tags           *[]string `json:"tags"`
	AssignedUserID *string   `json:"assigned_user_id" validate:"omitempty"`
}

type MoveTaskRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}
