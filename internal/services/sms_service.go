package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// SMSService sends text alerts through an HTTP SMS gateway.
type SMSService struct {
	apiURL     string
	accountSID string
	authToken  string
	fromNumber string
}

func NewSMSService() *SMSService {
	return &SMSService{
		apiURL:     os.Getenv("SMS_GATEWAY_URL"),
		accountSID: os.Getenv("SMS_ACCOUNT_SID"),
		authToken:  os.Getenv("SMS_AUTH_TOKEN"),
		fromNumber: os.Getenv("SMS_FROM_NUMBER"),
	}
}

type smsMessageRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

type smsResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SendMessage sends a text message to the given cell number. Dashes
// and spaces in the number are stripped before dispatch.
func (s *SMSService) SendMessage(cellNumber, body string) (string, error) {
	if s.apiURL == "" {
		return "", fmt.Errorf("SMS_GATEWAY_URL not configured")
	}

	cleaned := strings.NewReplacer("-", "", " ", "", "(", "", ")", "").Replace(cellNumber)

	payload := smsMessageRequest{
		To:   cleaned,
		From: s.fromNumber,
		Body: body,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/messages", s.apiURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if s.accountSID != "" && s.authToken != "" {
		req.SetBasicAuth(s.accountSID, s.authToken)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var gwResp smsResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		json.NewDecoder(resp.Body).Decode(&gwResp)
		return "", fmt.Errorf("SMS gateway error (status %d): %s", resp.StatusCode, gwResp.Message)
	}

	json.NewDecoder(resp.Body).Decode(&gwResp)
	return gwResp.SID, nil
}
