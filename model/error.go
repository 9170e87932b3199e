package model

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	ErrorParams              = 100001
	ErrorMobileNumberEmpty   = 100002
	ErrorMobileNumberInvalid = 100003
	ErrorMessageEmpty        = 100004
	ErrorProfileNotFound     = 100005
	ErrorNewRepo             = 100006
	ErrorDB                  = 100007
	ErrorExtraction          = 100008
	ErrorAdvisor             = 100009
	ErrorAnalytics           = 100010
)

var ErrorMessages = map[int]string{
	ErrorParams:              "invalid request parameters",
	ErrorMobileNumberEmpty:   "mobile_number is required",
	ErrorMobileNumberInvalid: "mobile_number is invalid",
	ErrorMessageEmpty:        "message is required",
	ErrorProfileNotFound:     "profile not found",
	ErrorNewRepo:             "failed to create repository",
	ErrorDB:                  "db error",
	ErrorExtraction:          "extraction service unavailable",
	ErrorAdvisor:             "advice service unavailable",
	ErrorAnalytics:           "analytics query failed",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"inner_error"`
}

func (err Error) Error() string {
	return err.Message
}

func (err Error) String() string {
	return err.InnerError.Error()
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: nil,
	}
}

func NewErrorWithMessage(code int, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		InnerError: nil,
	}
}
