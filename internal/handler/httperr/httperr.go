package httperr

import (
	"github.com/gin-gonic/gin"
)

const HeaderRequestID = "X-Request-Id"

// Response is the envelope for failures that carry no ledger outcome.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"requestId,omitempty"`
	Detail    any    `json:"detail,omitempty"`
}

func New(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	// echoed by the logging middleware before handlers run
	resp.RequestID = c.Writer.Header().Get(HeaderRequestID)
	return resp
}

// AbortWithError keeps err on the context for the completion log and writes msg to the caller.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(c, status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
