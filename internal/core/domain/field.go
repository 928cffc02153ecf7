package domain

// Field is a top-level land holding that owns zero or more plots.
type Field struct {
	FieldID  int64  `json:"fieldID"`
	Name     string `json:"name"`
	Location string `json:"location"`
	AuditFields
}
