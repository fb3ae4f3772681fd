package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ebbabire/call-reminder/internal/core/domain/call"
	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
)

const DEFAULT_API_URL = "https://api.vapi.ai"

type Config struct {
	APIKey        string
	APIURL        string
	AssistantID   string
	PhoneNumberID string
}

type assistantOverrides struct {
	FirstMessage string `json:"firstMessage"`
}

type customer struct {
	Number string `json:"number"`
}

type createCallRequest struct {
	AssistantID        string             `json:"assistantId"`
	AssistantOverrides assistantOverrides `json:"assistantOverrides"`
	PhoneNumberID      string             `json:"phoneNumberId"`
	Customer           customer           `json:"customer"`
}

type createCallResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

// Caller places outbound voice calls through the Vapi API. Transport and
// provider faults are folded into call.Outcome; nothing raw escapes.
type Caller struct {
	log        logging.Logger
	config     Config
	httpClient http.Client
}

func New(log logging.Logger, config Config, timeout time.Duration) *Caller {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if config.APIURL == "" {
		config.APIURL = DEFAULT_API_URL
	}
	return &Caller{
		log:        log,
		config:     config,
		httpClient: http.Client{Timeout: timeout},
	}
}

// IsConfigured reports whether all required credentials are present.
func (c *Caller) IsConfigured() bool {
	return c.validateConfig() == ""
}

func (c *Caller) PlaceCall(ctx context.Context, request call.Request) call.Outcome {
	if configError := c.validateConfig(); configError != "" {
		c.log.Error(
			ctx,
			"Vapi caller is not configured.",
			logging.Entry("error", configError),
		)
		return call.Failed(configError)
	}

	firstMessage := fmt.Sprintf(
		"Hello! This is your reminder about: %s. %s",
		request.Title,
		request.Message,
	)
	requestBody, err := json.Marshal(createCallRequest{
		AssistantID:        c.config.AssistantID,
		AssistantOverrides: assistantOverrides{FirstMessage: firstMessage},
		PhoneNumberID:      c.config.PhoneNumberID,
		Customer:           customer{Number: request.PhoneNumber},
	})
	if err != nil {
		return call.Failed(fmt.Sprintf("could not encode Vapi request: %v", err))
	}

	httpRequest, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.config.APIURL+"/call",
		bytes.NewReader(requestBody),
	)
	if err != nil {
		return call.Failed(fmt.Sprintf("could not create Vapi request: %v", err))
	}
	httpRequest.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		var urlError interface{ Timeout() bool }
		if errors.As(err, &urlError) && urlError.Timeout() {
			c.log.Error(ctx, "Vapi request timed out.", logging.Entry("phoneNumber", request.PhoneNumber))
			return call.Failed("Vapi API request timed out")
		}
		c.log.Error(ctx, "Vapi request failed.", logging.Entry("err", err))
		return call.Failed(fmt.Sprintf("Vapi API request failed: %v", err))
	}
	defer httpResponse.Body.Close()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return call.Failed(fmt.Sprintf("could not read Vapi response: %v", err))
	}

	if httpResponse.StatusCode != http.StatusOK && httpResponse.StatusCode != http.StatusCreated {
		errorMessage := c.extractErrorMessage(responseBody)
		c.log.Error(
			ctx,
			"Vapi API rejected the call.",
			logging.Entry("status", httpResponse.StatusCode),
			logging.Entry("errorMessage", errorMessage),
		)
		return call.Failed(fmt.Sprintf("Vapi API error (%d): %s", httpResponse.StatusCode, errorMessage))
	}

	callResponse := createCallResponse{}
	if err := json.Unmarshal(responseBody, &callResponse); err != nil || callResponse.ID == "" {
		// A nominally successful response with an unexpected shape is a
		// failure, not a success.
		c.log.Error(
			ctx,
			"Could not parse Vapi response.",
			logging.Entry("err", err),
			logging.Entry("body", string(responseBody)),
		)
		return call.Failed("could not parse Vapi response")
	}

	c.log.Info(
		ctx,
		"Vapi call has been triggered.",
		logging.Entry("callID", callResponse.ID),
		logging.Entry("phoneNumber", request.PhoneNumber),
	)
	return call.Succeeded(callResponse.ID)
}

func (c *Caller) validateConfig() string {
	if c.config.APIKey == "" {
		return "Vapi API key is not configured"
	}
	if c.config.AssistantID == "" {
		return "Vapi assistant ID is not configured"
	}
	if c.config.PhoneNumberID == "" {
		return "Vapi phone number ID is not configured"
	}
	return ""
}

func (c *Caller) extractErrorMessage(body []byte) string {
	response := errorResponse{}
	if err := json.Unmarshal(body, &response); err == nil {
		if len(response.Message) > 0 {
			var message string
			if err := json.Unmarshal(response.Message, &message); err == nil {
				return message
			}
			// Vapi validation errors return message as an array of strings.
			var messages []string
			if err := json.Unmarshal(response.Message, &messages); err == nil && len(messages) > 0 {
				return messages[0]
			}
		}
		if response.Error != "" {
			return response.Error
		}
	}
	return string(body)
}
