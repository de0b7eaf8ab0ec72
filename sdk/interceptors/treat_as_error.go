package interceptors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type ErrorDetector interface {
	// IsError returns a non-nil error when the round trip should fail.
	IsError(data InterceptorData) error
}

type TreatAsErrorInterceptor struct {
	ErrorDetector ErrorDetector
}

func NewTreatAsErrorInterceptor(errorDetector ErrorDetector) *TreatAsErrorInterceptor {
	return &TreatAsErrorInterceptor{
		ErrorDetector: errorDetector,
	}
}

func (a *TreatAsErrorInterceptor) BeforeRequest(data InterceptorData) (InterceptorData, error) {
	return data, nil
}

func (a *TreatAsErrorInterceptor) AfterResponse(data InterceptorData) (InterceptorData, error) {
	if err := a.ErrorDetector.IsError(data); err != nil {
		data.Error = err
	}
	return data, nil
}

// StatusError is returned for responses at or above 400.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("non-2xx response: %d", e.StatusCode)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

type errorDetectorAll struct{}

type errorTemplate struct {
	Details string `json:"details"`
	Reason  string `json:"reason"`
	Message struct {
		Detail string `json:"detail"`
	} `json:"message"`
	Error string `json:"error"`
}

func (errorDetectorAll) IsError(data InterceptorData) error {
	if data.Response == nil || data.Response.StatusCode < 400 {
		return nil
	}

	statusErr := &StatusError{StatusCode: data.Response.StatusCode}
	if data.Response.Body == nil {
		return statusErr
	}

	body, err := io.ReadAll(data.Response.Body)
	if err != nil {
		return err
	}
	data.Response.Body = io.NopCloser(bytes.NewReader(body))

	var tmpl errorTemplate
	if json.Unmarshal(body, &tmpl) != nil {
		return statusErr
	}

	switch {
	case tmpl.Message.Detail != "":
		statusErr.Message = tmpl.Message.Detail
	case tmpl.Reason != "":
		statusErr.Message = tmpl.Reason
	case tmpl.Details != "":
		statusErr.Message = tmpl.Details
	case tmpl.Error != "":
		statusErr.Message = tmpl.Error
	}
	return statusErr
}

// NewErrorDetectorAll treats every response with status >= 400 as an error.
func NewErrorDetectorAll() ErrorDetector {
	return errorDetectorAll{}
}
