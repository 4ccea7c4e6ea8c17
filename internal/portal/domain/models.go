package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ClientPortalAccess grants a sign-in email read access to one client's
// invoices and the ability to mark them paid.
type ClientPortalAccess struct {
	ID         snowflake.ID `json:"id,string" gorm:"primaryKey"`
	BusinessID snowflake.ID `json:"business_id,string" gorm:"index:idx_portal_access_business"`
	ClientID   snowflake.ID `json:"client_id,string" gorm:"uniqueIndex:idx_portal_access_grant"`
	Email      string       `json:"email" gorm:"uniqueIndex:idx_portal_access_grant;index:idx_portal_access_email"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (ClientPortalAccess) TableName() string {
	return "client_portal_access"
}
