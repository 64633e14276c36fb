package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

func apiClient() *resty.Client {
	return resty.New().
		SetBaseURL(serverURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
}

// call issues one request and pretty-prints the JSON response body.
func call(req *resty.Request, method, path string, okStatuses ...int) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	ok := false
	for _, s := range okStatuses {
		if resp.StatusCode() == s {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status(), resp.String())
	}
	if resp.StatusCode() == http.StatusNoContent || len(resp.Body()) == 0 {
		fmt.Println("OK")
		return nil
	}

	var pretty any
	if err := json.Unmarshal(resp.Body(), &pretty); err != nil {
		fmt.Println(resp.String())
		return nil
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
