package main

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"timesheet.service/internal/api/handler"
)

func main() {
	url := "http://localhost:8080/api/v1/entries"

	numEmployees := 5000
	entriesPerEmployee := 2
	totalRequests := numEmployees * entriesPerEmployee
	concurrency := 50 // Number of concurrent requests to avoid local port exhaustion

	fmt.Printf("Starting load test: %d employees (%d entries each) to %s with concurrency %d\n", numEmployees, entriesPerEmployee, url, concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	var successCount int64
	var failCount int64

	client := &http.Client{Timeout: 10 * time.Second}
	startTime := time.Now()

	for i := 0; i < numEmployees; i++ {
		wg.Add(1)
		sem <- struct{}{}

		employeeID := fmt.Sprintf("load-test-emp-%d", i)

		go func(empID string) {
			defer wg.Done()
			defer func() { <-sem }()

			for j := 0; j < entriesPerEmployee; j++ {
				// Weekdays in March 2024, one shift per day.
				payload := []byte(fmt.Sprintf(
					`{"date":"2024-03-%02d","startTime":"09:00","endTime":"18:%02d","timeZone":"America/Sao_Paulo"}`,
					4+j, (i+j)%60))

				req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set(handler.HeaderUserID, empID)

				resp, err := client.Do(req)
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(employeeID)
	}

	wg.Wait()
	duration := time.Since(startTime)

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration: %v\n", duration)
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", failCount)
	fmt.Printf("Requests/Sec:   %.2f\n", float64(totalRequests)/duration.Seconds())
}
