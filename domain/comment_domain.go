package domain

import (
	"errors"
	"time"
)

const MaxCommentLength = 2000

var (
	MessageSuccessPostComment   = "comment posted successfully"
	MessageSuccessEditComment   = "comment updated successfully"
	MessageSuccessDeleteComment = "comment deleted successfully"
	MessageSuccessGetThread     = "success get comment thread"

	MessageFailedPostComment   = "failed to post comment"
	MessageFailedEditComment   = "failed to update comment"
	MessageFailedDeleteComment = "failed to delete comment"
	MessageFailedGetThread     = "failed to get comment thread"

	ErrCommentNotFound   = errors.New("comment not found")
	ErrInvalidContent    = errors.New("comment content is empty or too long")
	ErrCrossRecipeParent = errors.New("parent comment belongs to a different recipe")
)

type (
	PostCommentRequest struct {
		ParentID string `json:"parent_id" validate:"omitempty,uuid"`
		Content  string `json:"content" validate:"required"`
	}

	EditCommentRequest struct {
		Content string `json:"content" validate:"required"`
	}

	Comment struct {
		ID        string    `json:"id"`
		RecipeID  string    `json:"recipe_id"`
		UserID    string    `json:"user_id"`
		ParentID  string    `json:"parent_id,omitempty"`
		Content   string    `json:"content"`
		Deleted   bool      `json:"deleted"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// CommentNode is a thread tree node. Replies are ordered oldest-first
	// and ReplyCount includes tombstoned direct children.
	CommentNode struct {
		Comment
		ReplyCount int           `json:"reply_count"`
		Replies    []CommentNode `json:"replies"`
	}
)
