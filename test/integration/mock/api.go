package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is an HTTP server standing in for a third-party API. It records
// every request and answers with a per-route canned response.
type ApiMock struct {
	mu               sync.Mutex
	server           *httptest.Server
	requestsReceived map[string][]map[string]any
	headersReceived  map[string][]map[string]string
	responses        map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   any
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requestsReceived: map[string][]map[string]any{},
		headersReceived:  map[string][]map[string]string{},
		responses:        map[string]cannedResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	headers := map[string]string{}
	for name, values := range r.Header {
		headers[name] = values[0]
	}

	a.mu.Lock()
	a.requestsReceived[key] = append(a.requestsReceived[key], request)
	a.headersReceived[key] = append(a.headersReceived[key], headers)
	response, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		response = cannedResponse{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	payload, _ := json.Marshal(response.body)
	_, _ = w.Write(payload)
}

// SetResponse fixes the answer for method+path until Reset.
func (a *ApiMock) SetResponse(method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = cannedResponse{status: status, body: response}
}

func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.requestsReceived[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	headers := a.headersReceived[method+path]
	if index < 0 || index >= len(headers) {
		return nil
	}
	return headers[index]
}

func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+path])
}

// Reset forgets recorded requests and canned responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestsReceived = map[string][]map[string]any{}
	a.headersReceived = map[string][]map[string]string{}
	a.responses = map[string]cannedResponse{}
}
