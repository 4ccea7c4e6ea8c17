package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoys/internal/businessctx"
)

const (
	// HeaderBusiness selects which of the user's businesses a request acts
	// on. Without it the session's current selection applies.
	HeaderBusiness = "X-Business-ID"

	contextUserIDKey     = "user_id"
	contextUserEmailKey  = "user_email"
	contextBusinessIDKey = "business_id"
)

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.authsvc.GetUser(c.Request.Context(), session.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, session.UserID)
		c.Set(contextUserEmailKey, user.Email)
		c.Next()
	}
}

// BusinessContext resolves the business a request is scoped to and verifies
// the user's membership before any handler runs.
func (s *Server) BusinessContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		var businessID snowflake.ID
		if raw := strings.TrimSpace(c.GetHeader(HeaderBusiness)); raw != "" {
			id, err := snowflake.ParseString(raw)
			if err != nil {
				AbortWithError(c, invalidRequestError())
				return
			}
			businessID = id
		} else {
			sess := s.businessSessions.Get(userID)
			current := sess.Current()
			if current == nil {
				if err := sess.Resolve(c.Request.Context()); err != nil {
					AbortWithError(c, err)
					return
				}
				current = sess.Current()
			}
			if current == nil {
				AbortWithError(c, ErrForbidden)
				return
			}
			businessID = current.ID
		}

		member, err := s.businesssvc.IsMember(c.Request.Context(), businessID, userID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !member {
			AbortWithError(c, ErrForbidden)
			return
		}

		c.Set(contextBusinessIDKey, businessID)
		c.Request = c.Request.WithContext(businessctx.WithBusinessID(c.Request.Context(), businessID))
		c.Next()
	}
}

func (s *Server) RequireSystemAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		profile, err := s.authsvc.GetProfile(c.Request.Context(), userID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !profile.IsSystemAdmin {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) (snowflake.ID, bool) {
	value, exists := c.Get(contextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(snowflake.ID)
	return id, ok && id != 0
}

func currentUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get(contextUserEmailKey)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok && email != ""
}

func currentBusinessID(c *gin.Context) (snowflake.ID, bool) {
	if id, ok := businessctx.BusinessIDFromContext(c.Request.Context()); ok {
		return id, true
	}
	value, exists := c.Get(contextBusinessIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(snowflake.ID)
	return id, ok && id != 0
}
