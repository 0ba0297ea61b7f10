package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/rawtime/internal/api"
)

// apiResponse mirrors api.Response with the payload left raw.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *api.ErrorInfo  `json:"error,omitempty"`
}

// =============================================================================
// Test Runner
// =============================================================================

// TestRunner runs smoke checks against a live rawtime API.
type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "rawtime API Smoke Test")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)

	// Run test groups
	tr.testHealth()
	tr.testConversions()
	tr.testArithmetic()
	tr.testFeasts()
	tr.testErrors()
	tr.testBookmarks()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health map[string]string
	if _, err := tr.call("GET", "/health", nil, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}
	if health["status"] == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health["status"]))
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Conversions")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   string
	}{
		{"encode", "POST", "/api/v1/encode", map[string]any{"values": []int{2025, 10, 2}}, "(2025-10-02 00:00:00) AC"},
		{"encode BC", "POST", "/api/v1/encode?kind=date", map[string]any{"values": []int{44, 3, 15}, "era": "BC"}, "(0044-03-15) BC"},
		{"decode", "GET", "/api/v1/decode/63926582400?kind=date", nil, "(2025-10-02) AC"},
		{"decode BC", "GET", "/api/v1/decode/-86400", nil, "(0000-01-02 00:00:00) BC"},
		{"stamp", "POST", "/api/v1/stamp?kind=date", map[string]any{"input": "02/10/2025", "template": "d m y"}, "(2025-10-02) AC"},
	}

	for _, c := range cases {
		var got api.InstantResponse
		if _, err := tr.call(c.method, c.path, c.body, &got); err != nil {
			tr.recordError(c.name, err.Error())
			continue
		}
		if got.Formatted != c.want {
			tr.recordError(c.name, fmt.Sprintf("got %s, want %s", got.Formatted, c.want))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: %s", c.name, got.Formatted))
		if tr.verbose {
			fmt.Fprintf(tr.out, "    rawtime %.4f drift %.4f weekday %s\n", got.Rawtime, got.Drift, got.Weekday)
		}
	}

	var now api.InstantResponse
	if _, err := tr.call("GET", "/api/v1/now", nil, &now); err != nil {
		tr.recordError("now", err.Error())
	} else {
		tr.recordSuccess("now: " + now.Formatted)
	}
}

func (tr *TestRunner) testArithmetic() {
	tr.printSection("Arithmetic")

	var sum api.CalcResponse
	body := map[string]any{"seconds": 63925502400, "op": "add", "operand": 86400}
	if _, err := tr.call("POST", "/api/v1/calc", body, &sum); err != nil {
		tr.recordError("add", err.Error())
	} else if sum.Instant == nil || sum.Instant.Formatted != "(2025-09-20 12:00:00) AC" {
		tr.recordError("add", fmt.Sprintf("unexpected result %+v", sum))
	} else {
		tr.recordSuccess("add a day: " + sum.Instant.Formatted)
	}

	var mod api.CalcResponse
	body = map[string]any{"seconds": -7, "op": "mod", "operand": 3}
	if _, err := tr.call("POST", "/api/v1/calc", body, &mod); err != nil {
		tr.recordError("mod", err.Error())
	} else if mod.Number == nil || *mod.Number != 2 {
		tr.recordError("mod", fmt.Sprintf("unexpected result %+v", mod))
	} else {
		tr.recordSuccess("-7 mod 3 = 2")
	}
}

func (tr *TestRunner) testFeasts() {
	tr.printSection("Feasts")

	var feasts api.FeastsResponse
	if _, err := tr.call("GET", "/api/v1/feasts/2025", nil, &feasts); err != nil {
		tr.recordError("feasts", err.Error())
		return
	}
	if feasts.Easter == nil || feasts.Easter.Formatted != "(2025-04-20) AC" {
		tr.recordError("feasts", fmt.Sprintf("unexpected Easter %+v", feasts.Easter))
		return
	}
	tr.recordSuccess("Easter 2025: " + feasts.Easter.Formatted)
}

func (tr *TestRunner) testErrors() {
	tr.printSection("Error Handling")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"division by zero", "POST", "/api/v1/calc", map[string]any{"seconds": 1, "op": "div", "operand": 0}, 400, "DIVISION_BY_ZERO"},
		{"template mismatch", "POST", "/api/v1/stamp", map[string]any{"input": "2025", "template": "y m"}, 400, "TOO_MANY_PARAMETERS"},
		{"bad operand", "POST", "/api/v1/calc", map[string]any{"seconds": 1, "op": "add", "operand": "x"}, 400, "UNSUPPORTED_OPERAND"},
		{"unknown route", "GET", "/api/v1/nope", nil, 404, "NOT_FOUND"},
	}

	for _, c := range cases {
		resp, err := tr.call(c.method, c.path, c.body, nil)
		if err == nil {
			tr.recordError(c.name, "expected an error response")
			continue
		}
		if resp == nil || resp.status != c.status || resp.code != c.code {
			tr.recordError(c.name, fmt.Sprintf("got %v, want %d %s", err, c.status, c.code))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: %d %s", c.name, c.status, c.code))
	}
}

func (tr *TestRunner) testBookmarks() {
	tr.printSection("Bookmarks")

	name := fmt.Sprintf("apitest-%d", time.Now().UnixNano())
	body := map[string]any{"name": name, "values": []int{2000, 1, 1}, "note": "smoke test"}
	if _, err := tr.call("POST", "/api/v1/bookmarks", body, nil); err != nil {
		tr.recordError("create bookmark", err.Error())
		return
	}
	tr.recordSuccess("created " + name)

	var got api.BookmarkResponse
	if _, err := tr.call("GET", "/api/v1/bookmarks/"+name+"?kind=date", nil, &got); err != nil {
		tr.recordError("get bookmark", err.Error())
	} else if got.Instant == nil || got.Instant.Formatted != "(2000-01-01) AC" {
		tr.recordError("get bookmark", fmt.Sprintf("unexpected bookmark %+v", got))
	} else {
		tr.recordSuccess("read back " + got.Instant.Formatted)
	}

	if _, err := tr.call("DELETE", "/api/v1/bookmarks/"+name, nil, nil); err != nil {
		tr.recordError("delete bookmark", err.Error())
		return
	}
	tr.recordSuccess("deleted " + name)
}

// =============================================================================
// Helpers
// =============================================================================

// callResult is the status and error code of a failed call.
type callResult struct {
	status int
	code   string
}

// call sends a request and decodes the data payload into target. Non-success
// responses come back as an error along with their status and code.
func (tr *TestRunner) call(method, path string, body, target any) (*callResult, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}

	resp, err := tr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}

	if !apiResp.Success {
		res := &callResult{status: resp.StatusCode}
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
			res.code = apiResp.Error.Code
		}
		return res, fmt.Errorf("API error %d %s: %s", resp.StatusCode, res.code, errMsg)
	}

	if target != nil {
		if err := json.Unmarshal(apiResp.Data, target); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return &callResult{status: resp.StatusCode}, nil
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Summary")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)
	fmt.Fprintln(tr.out)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "Failures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
		fmt.Fprintln(tr.out)
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}
	fmt.Fprintln(tr.out, "All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key for bookmark writes")
	verbose := flag.Bool("v", false, "Verbose output (show rawtime details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, os.Stdout, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
