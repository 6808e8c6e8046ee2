package models

// ApiResponse is the envelope every endpoint returns. Error holds the
// taxonomy code, Details the machine-readable context (validation fields,
// transition from/to), Pagination only appears on list endpoints.
type ApiResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Details    interface{} `json:"details,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(message string) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
	}
}

// ErrorDetailResponse carries the taxonomy code and any structured details
// alongside the human-readable message.
func ErrorDetailResponse(code, message string, details interface{}) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
		Error:   code,
		Details: details,
	}
}

func PaginatedResponse(data interface{}, page, limit, total int) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	}
}
