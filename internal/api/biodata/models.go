// internal/api/biodata/models.go
package biodata

import "biodata-service/internal/models"

// StudentCheckInput is the body of POST /api/student_check. A missing key
// leaves ApplicationNumber nil.
type StudentCheckInput struct {
	ApplicationNumber interface{}
}

type StudentCheckOutput struct {
	Message string               `json:"message"`
	ID      models.BiodataRecord `json:"id"`
}

type CreateOutput struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MessageOutput struct {
	Message string `json:"message"`
}

const (
	MsgStudentFound    = "Student record found"
	MsgStudentNotFound = "Student record not found"
	MsgAdded           = "BioData added"
	MsgUpdated         = "BioData updated"
	MsgDeleted         = "BioData deleted"
)
