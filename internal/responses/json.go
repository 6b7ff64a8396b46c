package responses

import "github.com/gin-gonic/gin"

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// FailWithDetail renders the error envelope with extra top-level fields, such
// as the reason a model call was blocked.
func FailWithDetail(c *gin.Context, statusCode int, err error, message string, detail map[string]any) {
	if len(detail) == 0 {
		Fail(c, statusCode, err, message)
		return
	}

	body := gin.H{}
	for k, v := range detail {
		body[k] = v
	}
	body["status"] = "error"
	if message != "" {
		body["message"] = message
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(statusCode, body)
}
