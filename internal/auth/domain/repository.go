package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User, profile *Profile) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id snowflake.ID) (*User, error)
	FindProfile(ctx context.Context, userID snowflake.ID) (*Profile, error)

	CreateSession(ctx context.Context, session *Session) error
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	RevokeSession(ctx context.Context, tokenHash string) error
	TouchSession(ctx context.Context, id snowflake.ID) error
}
