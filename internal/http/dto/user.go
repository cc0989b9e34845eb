package dto

import (
	"time"

	"taskboard.app/server/internal/model"
)

type CreateUserRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type UserBrief struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID        int64          `json:"id,string"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	Tasks     []TaskResponse `json:"tasks,omitempty"`
}

func ToUserResponse(u *model.User) *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
	for i := range u.Tasks {
		resp.Tasks = append(resp.Tasks, *ToTaskResponse(&u.Tasks[i]))
	}
	return resp
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

func ToUserListResponse(users []model.User) *UserListResponse {
	resp := &UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, *ToUserResponse(&users[i]))
	}
	return resp
}
