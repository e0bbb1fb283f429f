package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junoapp/juno-backend/internal/dto"
	apierrors "github.com/junoapp/juno-backend/internal/errors"
	"github.com/junoapp/juno-backend/internal/middleware"
	"github.com/junoapp/juno-backend/internal/services"
)

// FriendHandler coordinates friend HTTP handlers.
type FriendHandler struct {
	friendService *services.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

// SearchUsers finds users by username, name or email fragment.
func (h *FriendHandler) SearchUsers(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	users, err := h.friendService.SearchUsers(userID, c.Query("q"))
	if err != nil {
		apierrors.InternalError(c, "Failed to search users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"count": len(users),
	})
}

// ListFriends lists the caller's accepted friends.
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	friends, err := h.friendService.ListFriends(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list friends")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friends": dto.ToUserDTOs(friends),
		"count":   len(friends),
	})
}

// ListRequests lists pending requests addressed to the caller.
func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	requests, err := h.friendService.ListPendingRequests(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list friend requests")
		return
	}

	dtos := make([]dto.FriendRequestDTO, len(requests))
	for i, request := range requests {
		dtos[i] = dto.ToFriendRequestDTO(request)
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": dtos,
		"count":    len(dtos),
	})
}

// SendRequest creates a pending friend request. The recipient is addressed
// by id or by username.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type SendRequestBody struct {
		RecipientID       uint64 `json:"recipient_id"`
		RecipientUsername string `json:"recipient_username"`
	}

	var req SendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.RecipientID == 0 && req.RecipientUsername == "" {
		apierrors.BadRequest(c, "Recipient id or username required")
		return
	}

	friendship, err := h.friendService.SendRequest(userID, req.RecipientID, req.RecipientUsername)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"request": dto.ToFriendRequestDTO(*friendship),
	})
}

// AcceptRequest accepts a pending request addressed to the caller.
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.friendService.AcceptRequest(requestID, userID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend request accepted",
	})
}

// DeclineRequest removes a pending request. Works for the recipient
// declining and for the requester withdrawing.
func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.friendService.DeclineRequest(requestID, userID); err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend request removed",
	})
}

func respondFriendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRequestNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSelfFriendRequest):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFriendshipExists),
		errors.Is(err, services.ErrRequestNotPending):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotRequestRecipient),
		errors.Is(err, services.ErrNotRequestParty):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
