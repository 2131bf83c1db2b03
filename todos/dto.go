package todos

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Text        string `json:"text" validate:"required,max=500" example:"Water the plants"`
	Description string `json:"description" validate:"max=2000" example:"Balcony ones too"`
	Priority    string `json:"priority" validate:"omitempty,oneof=Low Medium High" example:"High"`
}

// CreateTodoResponse acknowledges a created todo.
type CreateTodoResponse struct {
	Success bool  `json:"success" example:"true"`
	TodoID  int64 `json:"todo_id" example:"12"`
}

// ToggleTodoResponse reports the state after PUT /todos/{id}.
type ToggleTodoResponse struct {
	Success   bool `json:"success" example:"true"`
	Completed bool `json:"completed" example:"true"`
	Reward    int  `json:"reward" example:"1"`
}
