package dto

// Response is the canonical result shape for every operation:
// {status, message, data, meta?}. Status=false means Data describes the
// failure rather than a partial success payload; callers branch on Status.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    any    `json:"meta,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Status: true, Message: message, Data: data}
}

// OKWithMeta builds a success envelope with pagination or other metadata.
func OKWithMeta(message string, data any, meta any) Response {
	return Response{Status: true, Message: message, Data: data, Meta: meta}
}

// Fail builds a failure envelope; detail carries validation or not-found
// specifics.
func Fail(message string, detail any) Response {
	return Response{Status: false, Message: message, Data: detail}
}

// PageMeta carries the token for the next page of a listing.
type PageMeta struct {
	NextToken *string `json:"nextToken,omitempty"`
}

// BulkFailure records one skipped item of a bulk operation.
type BulkFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}
