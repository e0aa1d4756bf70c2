package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api/v1"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func decode(body []byte) map[string]interface{} {
	var out map[string]interface{}
	json.Unmarshal(body, &out)
	return out
}

func main() {
	color.Cyan("🚀 Starting DocuMind API Smoke Test\n")

	// 1. Health
	color.Yellow("\n1. Health check")
	resp, err := http.Get("http://localhost:3000/health")
	if err != nil {
		color.Red("Server not reachable: %v", err)
		os.Exit(1)
	}
	resp.Body.Close()
	color.Green("Status: %s", resp.Status)

	// 2. Create a note
	color.Yellow("\n2. Create note")
	noteReq := map[string]interface{}{
		"title":   "Smoke test note",
		"content": "Created by scripts/smoke_api.go",
		"tags":    []string{"smoke"},
		"folder":  "Scratch",
	}
	r, body, err := sendRequest("POST", "/notes", noteReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", r.Status)
	created := decode(body)
	prettyPrint(created)

	noteId := ""
	if data, ok := created["data"].(map[string]interface{}); ok {
		noteId, _ = data["id"].(string)
	}

	// 3. List notes in the scratch folder
	color.Yellow("\n3. List notes (folder=Scratch)")
	r, body, err = sendRequest("GET", "/notes?folder=Scratch", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", r.Status)
	prettyPrint(decode(body))

	// 4. Session listing
	color.Yellow("\n4. List sessions")
	r, body, err = sendRequest("GET", "/sessions", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", r.Status)
	prettyPrint(decode(body))

	// 5. Workspace export
	color.Yellow("\n5. Export workspace")
	r, body, err = sendRequest("GET", "/workspace/export", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s (%d bytes)", r.Status, len(body))

	// 6. Diagnostics feed
	color.Yellow("\n6. Activity log")
	r, body, err = sendRequest("GET", "/diagnostics/logs?limit=5", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", r.Status)
	prettyPrint(decode(body))

	// 7. Cleanup the note
	if noteId != "" {
		color.Yellow("\n7. Delete smoke note")
		r, _, err = sendRequest("DELETE", "/notes/"+noteId, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", r.Status)
	}

	color.Cyan("\n✅ Smoke test finished")
}
