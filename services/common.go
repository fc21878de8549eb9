package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// HttpRequest sends data as a JSON body and returns the raw response body.
// Non-2xx answers come back as an error together with the body.
func HttpRequest(method, url string, header map[string]string, data interface{}) ([]byte, error) {
	var body io.Reader
	if data != nil {
		requestBody, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(requestBody)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, element := range header {
		req.Header.Set(key, element)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	return respBody, nil
}
