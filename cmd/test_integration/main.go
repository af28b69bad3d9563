package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("ZOMRA_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 30 * time.Second}

	fmt.Println("Starting smoke test against", baseURL)

	steps := []struct {
		name   string
		method string
		path   string
		body   any
		check  func(map[string]any) error
	}{
		{"health", http.MethodGet, "/health", nil, expectKey("knowledge_entries")},
		{"kb answer", http.MethodPost, "/api/chat", map[string]any{"message": "شروط التبرع"}, expectValue("source_type", "KB")},
		{"empty chat", http.MethodPost, "/api/chat", map[string]any{"message": "  "}, expectValue("source_type", "Error")},
		{"english ui", http.MethodPost, "/api/chat", map[string]any{"message": "هل التبرع بالدم مؤلم؟", "lang": "en"}, expectKey("answer")},
		{"questions", http.MethodGet, "/api/eligibility/questions", nil, expectKey("questions")},
		{"evaluate", http.MethodPost, "/api/eligibility/evaluate", map[string]any{"age": 17, "weight": 45}, expectValue("state", "temporary")},
		{"urgent needs", http.MethodGet, "/api/urgent_needs", nil, expectKey("needs")},
		{"campaigns", http.MethodGet, "/api/campaigns", nil, expectKey("ok")},
	}

	for i, step := range steps {
		fmt.Printf("%d. %s...\n", i+1, step.name)
		body, err := sendRequest(client, step.method, baseURL+step.path, step.body)
		if err == nil {
			err = step.check(body)
		}
		if err != nil {
			fmt.Printf("FAILED: %s: %v\n", step.name, err)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", step.name)
	}
}

func expectKey(key string) func(map[string]any) error {
	return func(body map[string]any) error {
		if _, ok := body[key]; !ok {
			return fmt.Errorf("response has no %q field", key)
		}
		return nil
	}
}

func expectValue(key string, want any) func(map[string]any) error {
	return func(body map[string]any) error {
		if got := body[key]; got != want {
			return fmt.Errorf("%s = %v, want %v", key, got, want)
		}
		return nil
	}
}

func sendRequest(client *http.Client, method, url string, payload any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))

	var out map[string]any
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return out, nil
}
