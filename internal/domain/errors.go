package domain

import "errors"

// Entity errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Mutation errors
var (
	ErrLoginNameTaken   = errors.New("login name already exists")
	ErrEmptyUpload      = errors.New("photo file required")
	ErrEmptyComment     = errors.New("comment body required")
	ErrAlreadyLiked     = errors.New("photo already liked by user")
	ErrNotLiked         = errors.New("photo not liked by user")
	ErrNotPhotoOwner    = errors.New("only the photo owner can perform this action")
	ErrNotCommentAuthor = errors.New("only the comment author can perform this action")
)
