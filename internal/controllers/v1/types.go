package v1

import (
	ss_uuid "github.com/smartspend/backend/internal/uuid"
)

type URIID struct {
	ID ss_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
