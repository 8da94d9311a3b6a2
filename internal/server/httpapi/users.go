package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

func (h *handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	s, err := h.users.Signup(c.Request.Context(), services.Signup{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	setSessionCookie(c, s, h.cookieSecure)
	c.JSON(http.StatusCreated, gin.H{"user": newUserResponse(s.User)})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	s, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	setSessionCookie(c, s, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(s.User)})
}

// logout always succeeds; it only expires the cookie.
func (h *handler) logout(c *gin.Context) {
	clearSessionCookie(c, h.cookieSecure)
	c.Status(http.StatusNoContent)
}

func (h *handler) me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": newUserResponse(user)})
}

func (h *handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUser(c).ID, services.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// updatePassword reissues the session cookie, since the old token is
// revoked by the change.
func (h *handler) updatePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	s, err := h.users.UpdatePassword(c.Request.Context(), currentUser(c).ID, services.PasswordChange{
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	setSessionCookie(c, s, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(s.User)})
}
